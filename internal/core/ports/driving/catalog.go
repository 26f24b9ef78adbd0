package driving

import (
	"context"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

// CatalogService owns the in-memory recipe collection.
// It is the only writer of the list; every mutation goes through the
// remote first and is applied locally only on success.
type CatalogService interface {
	// Load replaces the collection with the remote list.
	// On failure the collection is left untouched.
	Load(ctx context.Context) error

	// Add validates and creates a recipe, then appends it.
	Add(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error)

	// Replace updates a recipe and overwrites the matching entry.
	Replace(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error)

	// Remove deletes a recipe and drops it from the collection.
	Remove(ctx context.Context, id int64) error

	// Recipes returns a copy of the collection in list order.
	Recipes() []domain.Recipe

	// Get returns the recipe with the given ID or domain.ErrNotFound.
	Get(id int64) (domain.Recipe, error)

	// Len returns the number of recipes held.
	Len() int

	// Loaded returns true once a Load has succeeded.
	Loaded() bool

	// Categories returns the sorted distinct categories of the collection.
	Categories() []string

	// Filter returns the recipes matching the filter, in list order.
	Filter(filter domain.RecipeFilter) []domain.Recipe
}
