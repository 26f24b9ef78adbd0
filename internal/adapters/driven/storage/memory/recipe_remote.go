package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driven"
)

// Ensure RecipeRemote implements the interface.
var _ driven.RecipeRemote = (*RecipeRemote)(nil)

// Remote operation names accepted by RecipeRemote.Fail.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// RecipeRemote is an in-memory stand-in for the remote recipe catalog.
// Identifiers are assigned sequentially from 1.
// Failures can be injected per operation for testing.
type RecipeRemote struct {
	mu      sync.RWMutex
	nextID  int64
	recipes []domain.Recipe
	fail    map[string]error
	calls   map[string]int
}

// NewRecipeRemote creates a remote pre-populated with the given recipes.
// Seeded recipes keep their IDs.
func NewRecipeRemote(seed ...domain.Recipe) *RecipeRemote {
	r := &RecipeRemote{
		fail:  make(map[string]error),
		calls: make(map[string]int),
	}
	for _, recipe := range seed {
		r.recipes = append(r.recipes, recipe.Clone())
		if recipe.ID > r.nextID {
			r.nextID = recipe.ID
		}
	}
	return r
}

// Fail makes every subsequent call of op return err. A nil err clears it.
func (r *RecipeRemote) Fail(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.fail, op)
		return
	}
	r.fail[op] = err
}

// Calls returns how many times op was invoked, failures included.
func (r *RecipeRemote) Calls(op string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.calls[op]
}

func (r *RecipeRemote) begin(op string) error {
	r.calls[op]++
	return r.fail[op]
}

// List returns every stored recipe.
func (r *RecipeRemote) List(_ context.Context) ([]domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(OpList); err != nil {
		return nil, err
	}
	out := make([]domain.Recipe, len(r.recipes))
	for i := range r.recipes {
		out[i] = r.recipes[i].Clone()
	}
	return out, nil
}

// Create stores a draft under the next identifier.
func (r *RecipeRemote) Create(_ context.Context, draft domain.RecipeDraft) (domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(OpCreate); err != nil {
		return domain.Recipe{}, err
	}
	r.nextID++
	recipe := draft.WithID(r.nextID)
	r.recipes = append(r.recipes, recipe.Clone())
	return recipe, nil
}

// Update replaces the stored recipe with the same ID.
func (r *RecipeRemote) Update(_ context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !recipe.IsPersisted() {
		return domain.Recipe{}, &domain.ValidationError{Field: "id", Err: domain.ErrMissingIdentifier}
	}
	if err := r.begin(OpUpdate); err != nil {
		return domain.Recipe{}, err
	}
	for i := range r.recipes {
		if r.recipes[i].ID == recipe.ID {
			r.recipes[i] = recipe.Clone()
			return recipe.Clone(), nil
		}
	}
	return domain.Recipe{}, &domain.APIError{Op: "update recipe", StatusCode: 404, Message: "recipe not found"}
}

// Delete removes the stored recipe with the given ID.
func (r *RecipeRemote) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id <= 0 {
		return &domain.ValidationError{Field: "id", Err: domain.ErrMissingIdentifier}
	}
	if err := r.begin(OpDelete); err != nil {
		return err
	}
	for i := range r.recipes {
		if r.recipes[i].ID == id {
			r.recipes = append(r.recipes[:i], r.recipes[i+1:]...)
			return nil
		}
	}
	return &domain.APIError{Op: "delete recipe", StatusCode: 404, Message: "recipe not found"}
}
