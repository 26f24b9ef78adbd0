package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driven"
	"github.com/custodia-labs/recetasu/internal/core/ports/driving"
	"github.com/custodia-labs/recetasu/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService holds the authoritative recipe list.
// Mutations are applied only after the remote confirms them, so a
// failed call never leaves the list in a state the remote does not know.
type CatalogService struct {
	remote   driven.RecipeRemote
	comments driven.CommentStore

	mu      sync.RWMutex
	recipes []domain.Recipe
	loaded  bool
}

// NewCatalogService creates a catalog backed by the given remote.
// comments may be nil; when set, a recipe's comments are dropped
// after the recipe is deleted.
func NewCatalogService(remote driven.RecipeRemote, comments driven.CommentStore) *CatalogService {
	return &CatalogService{
		remote:   remote,
		comments: comments,
	}
}

// Load replaces the list with the remote's current contents.
func (s *CatalogService) Load(ctx context.Context) error {
	if s.remote == nil {
		return domain.ErrNotImplemented
	}
	defer logger.Since("load catalog", time.Now())

	recipes, err := s.remote.List(ctx)
	if err != nil {
		logger.Warn("load catalog: %v", err)
		return fmt.Errorf("load recipes: %w", err)
	}

	s.mu.Lock()
	s.recipes = recipes
	s.loaded = true
	s.mu.Unlock()

	logger.Debug("catalog loaded with %d recipes", len(recipes))
	return nil
}

// Add validates and creates a recipe, then appends it to the list.
func (s *CatalogService) Add(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error) {
	if err := draft.Validate(); err != nil {
		return domain.Recipe{}, err
	}
	if s.remote == nil {
		return domain.Recipe{}, domain.ErrNotImplemented
	}

	created, err := s.remote.Create(ctx, draft)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}

	s.mu.Lock()
	s.recipes = append(s.recipes, created)
	s.mu.Unlock()

	logger.Info("created recipe %d %q", created.ID, created.Name)
	return created.Clone(), nil
}

// Replace updates a recipe remotely and overwrites the first local
// entry with the same ID. A recipe not in the list is left out.
func (s *CatalogService) Replace(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	if !recipe.IsPersisted() {
		return domain.Recipe{}, &domain.ValidationError{Field: "id", Err: domain.ErrMissingIdentifier}
	}
	if err := recipe.Draft().Validate(); err != nil {
		return domain.Recipe{}, err
	}
	if s.remote == nil {
		return domain.Recipe{}, domain.ErrNotImplemented
	}

	updated, err := s.remote.Update(ctx, recipe)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("update recipe %d: %w", recipe.ID, err)
	}

	s.mu.Lock()
	for i := range s.recipes {
		if s.recipes[i].ID == updated.ID {
			s.recipes[i] = updated
			break
		}
	}
	s.mu.Unlock()

	logger.Info("updated recipe %d", updated.ID)
	return updated.Clone(), nil
}

// Remove deletes a recipe remotely and drops it from the list.
func (s *CatalogService) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return &domain.ValidationError{Field: "id", Err: domain.ErrMissingIdentifier}
	}
	if s.remote == nil {
		return domain.ErrNotImplemented
	}

	if err := s.remote.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}

	s.mu.Lock()
	kept := s.recipes[:0:0]
	for _, r := range s.recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.recipes = kept
	s.mu.Unlock()

	if s.comments != nil {
		if err := s.comments.DeleteByRecipe(ctx, id); err != nil {
			logger.Warn("drop comments of recipe %d: %v", id, err)
		}
	}

	logger.Info("deleted recipe %d", id)
	return nil
}

// Recipes returns a copy of the list.
func (s *CatalogService) Recipes() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Recipe, len(s.recipes))
	for i := range s.recipes {
		out[i] = s.recipes[i].Clone()
	}
	return out
}

// Get returns the recipe with the given ID.
func (s *CatalogService) Get(id int64) (domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			return s.recipes[i].Clone(), nil
		}
	}
	return domain.Recipe{}, fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
}

// Len returns the number of recipes held.
func (s *CatalogService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// Loaded returns true once a Load has succeeded.
func (s *CatalogService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Categories returns the distinct categories of the current list.
func (s *CatalogService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Categories(s.recipes)
}

// Filter returns the recipes matching the filter, in list order.
func (s *CatalogService) Filter(filter domain.RecipeFilter) []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := filter.Apply(s.recipes)
	for i := range matched {
		matched[i] = matched[i].Clone()
	}
	return matched
}
