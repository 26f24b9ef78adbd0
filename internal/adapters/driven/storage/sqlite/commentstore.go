package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driven"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// commentStore implements driven.CommentStore.
type commentStore struct {
	store *Store
}

var _ driven.CommentStore = (*commentStore)(nil)

// Create stores a comment and assigns its ID.
func (s *commentStore) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	comment.CreatedAt = comment.CreatedAt.UTC()

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO comments (recipe_id, author, content, rating, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, comment.RecipeID, comment.Author, comment.Content, comment.Rating,
		comment.CreatedAt.Format(timeLayout))
	if err != nil {
		return domain.Comment{}, fmt.Errorf("saving comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Comment{}, fmt.Errorf("reading comment id: %w", err)
	}
	comment.ID = id
	return comment, nil
}

// ListByRecipe returns a recipe's comments, newest first.
func (s *commentStore) ListByRecipe(ctx context.Context, recipeID int64) ([]domain.Comment, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, recipe_id, author, content, rating, created_at
		FROM comments
		WHERE recipe_id = ?
		ORDER BY created_at DESC, id DESC
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		var createdAt string
		if err := rows.Scan(&c.ID, &c.RecipeID, &c.Author, &c.Content, &c.Rating, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		c.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing comment time: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}

// DeleteByRecipe removes all comments of a recipe.
func (s *commentStore) DeleteByRecipe(ctx context.Context, recipeID int64) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM comments WHERE recipe_id = ?", recipeID)
	if err != nil {
		return fmt.Errorf("deleting comments: %w", err)
	}
	return nil
}
