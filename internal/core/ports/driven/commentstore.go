package driven

import (
	"context"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

// CommentStore persists recipe comments.
type CommentStore interface {
	// Create stores a comment, assigns its ID and returns it.
	Create(ctx context.Context, comment domain.Comment) (domain.Comment, error)

	// ListByRecipe returns the comments of a recipe, newest first.
	ListByRecipe(ctx context.Context, recipeID int64) ([]domain.Comment, error)

	// DeleteByRecipe removes all comments of a recipe.
	DeleteByRecipe(ctx context.Context, recipeID int64) error
}
