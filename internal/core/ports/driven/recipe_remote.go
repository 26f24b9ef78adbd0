package driven

import (
	"context"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

// RecipeRemote is the remote recipe catalog.
// Implementations resolve wire identifiers so every returned recipe
// carries exactly one ID. No implementation retries on failure.
type RecipeRemote interface {
	// List returns every recipe known to the remote.
	List(ctx context.Context) ([]domain.Recipe, error)

	// Create persists a draft and returns it with its new identifier.
	Create(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error)

	// Update replaces an existing recipe. Recipes without an ID are
	// rejected before any request is made.
	Update(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error)

	// Delete removes a recipe by ID.
	Delete(ctx context.Context, id int64) error
}
