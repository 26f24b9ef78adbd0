package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driven"
	"github.com/custodia-labs/recetasu/internal/core/ports/driving"
	"github.com/custodia-labs/recetasu/internal/logger"
)

// Ensure CommentService implements the interface.
var _ driving.CommentService = (*CommentService)(nil)

// CommentService manages recipe reviews.
// Comments never reach the remote recipe service.
type CommentService struct {
	store driven.CommentStore
	now   func() time.Time
}

// NewCommentService creates a new comment service.
func NewCommentService(store driven.CommentStore) *CommentService {
	return &CommentService{
		store: store,
		now:   time.Now,
	}
}

// Add validates, trims and stores a comment.
func (s *CommentService) Add(ctx context.Context, recipeID int64, draft domain.CommentDraft) (domain.Comment, error) {
	if recipeID <= 0 {
		return domain.Comment{}, &domain.ValidationError{Field: "recipeId", Err: domain.ErrMissingIdentifier}
	}
	if err := draft.Validate(); err != nil {
		return domain.Comment{}, err
	}
	if s.store == nil {
		return domain.Comment{}, domain.ErrNotImplemented
	}

	draft = draft.Normalise()
	comment, err := s.store.Create(ctx, domain.Comment{
		RecipeID:  recipeID,
		Author:    draft.Author,
		Content:   draft.Content,
		Rating:    draft.Rating,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("add comment: %w", err)
	}

	logger.Debug("comment %d added to recipe %d", comment.ID, recipeID)
	return comment, nil
}

// List returns a recipe's comments, newest first.
func (s *CommentService) List(ctx context.Context, recipeID int64) ([]domain.Comment, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	comments, err := s.store.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Summary combines a recipe with its comments and average rating.
func (s *CommentService) Summary(ctx context.Context, recipe domain.Recipe) (domain.RecipeWithComments, error) {
	comments, err := s.List(ctx, recipe.ID)
	if err != nil {
		return domain.RecipeWithComments{}, err
	}
	return domain.NewRecipeWithComments(recipe, comments), nil
}
