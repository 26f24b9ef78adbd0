package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driven"
)

// Ensure CommentStore implements the interface.
var _ driven.CommentStore = (*CommentStore)(nil)

// CommentStore keeps comments for the life of the process.
type CommentStore struct {
	mu       sync.RWMutex
	nextID   int64
	byRecipe map[int64][]domain.Comment
}

// NewCommentStore creates a new in-memory comment store.
func NewCommentStore() *CommentStore {
	return &CommentStore{
		byRecipe: make(map[int64][]domain.Comment),
	}
}

// Create stores a comment and assigns its ID.
func (s *CommentStore) Create(_ context.Context, comment domain.Comment) (domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	comment.ID = s.nextID
	s.byRecipe[comment.RecipeID] = append(s.byRecipe[comment.RecipeID], comment)
	return comment, nil
}

// ListByRecipe returns a recipe's comments, newest first.
func (s *CommentStore) ListByRecipe(_ context.Context, recipeID int64) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.byRecipe[recipeID]
	result := make([]domain.Comment, len(stored))
	copy(result, stored)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// DeleteByRecipe removes all comments of a recipe.
func (s *CommentStore) DeleteByRecipe(_ context.Context, recipeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byRecipe, recipeID)
	return nil
}
