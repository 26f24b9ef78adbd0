package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recetasu/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recetasu/internal/core/domain"
)

func newTestCommentService() *CommentService {
	service := NewCommentService(memory.NewCommentStore())
	clock := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return service
}

func TestCommentService_Add(t *testing.T) {
	service := newTestCommentService()

	c, err := service.Add(context.Background(), 3, domain.CommentDraft{
		Author:  "  Ana ",
		Content: " Deliciosa ",
		Rating:  5,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, int64(3), c.RecipeID)
	assert.Equal(t, "Ana", c.Author)
	assert.Equal(t, "Deliciosa", c.Content)
	assert.Equal(t, time.UTC, c.CreatedAt.Location())
}

func TestCommentService_Add_Invalid(t *testing.T) {
	service := newTestCommentService()
	ctx := context.Background()

	_, err := service.Add(ctx, 0, domain.CommentDraft{Author: "Ana", Content: "x", Rating: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Add(ctx, 1, domain.CommentDraft{Author: "Ana", Content: "x", Rating: 9})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Ratings 5, 4 and 3 average to 4.0 and the newest comment comes first.
func TestCommentService_Summary(t *testing.T) {
	service := newTestCommentService()
	ctx := context.Background()
	recipe := domain.Recipe{ID: 9, Name: "Arepas"}

	for _, rating := range []int{5, 4, 3} {
		_, err := service.Add(ctx, recipe.ID, domain.CommentDraft{Author: "user", Content: "ok", Rating: rating})
		require.NoError(t, err)
	}

	summary, err := service.Summary(ctx, recipe)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalComments)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.0001)
	assert.Equal(t, "4.0", domain.FormatRating(summary.AverageRating))
	assert.Equal(t, 3, summary.Comments[0].Rating)
	assert.Equal(t, "Arepas", summary.Name)
}

func TestCommentService_Summary_NoComments(t *testing.T) {
	service := newTestCommentService()
	summary, err := service.Summary(context.Background(), domain.Recipe{ID: 1})
	require.NoError(t, err)
	assert.Zero(t, summary.TotalComments)
	assert.Zero(t, summary.AverageRating)
}

func TestCommentService_NilStore(t *testing.T) {
	service := NewCommentService(nil)
	_, err := service.List(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
