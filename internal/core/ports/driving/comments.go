package driving

import (
	"context"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

// CommentService manages recipe reviews.
type CommentService interface {
	// Add validates and stores a comment for a recipe.
	Add(ctx context.Context, recipeID int64, draft domain.CommentDraft) (domain.Comment, error)

	// List returns a recipe's comments, newest first.
	List(ctx context.Context, recipeID int64) ([]domain.Comment, error)

	// Summary combines a recipe with its comments and average rating.
	Summary(ctx context.Context, recipe domain.Recipe) (domain.RecipeWithComments, error)
}
