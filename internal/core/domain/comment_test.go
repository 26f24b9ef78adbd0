package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentDraft_Validate(t *testing.T) {
	tests := []struct {
		name  string
		draft CommentDraft
		field string
	}{
		{name: "valid", draft: CommentDraft{Author: "Ana", Content: "Rica", Rating: 5}},
		{name: "blank author", draft: CommentDraft{Author: "   ", Content: "Rica", Rating: 5}, field: "author"},
		{name: "blank content", draft: CommentDraft{Author: "Ana", Content: "\n", Rating: 5}, field: "content"},
		{name: "rating too low", draft: CommentDraft{Author: "Ana", Content: "Rica", Rating: 0}, field: "rating"},
		{name: "rating too high", draft: CommentDraft{Author: "Ana", Content: "Rica", Rating: 6}, field: "rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCommentDraft_Normalise(t *testing.T) {
	d := CommentDraft{Author: "  Ana ", Content: " Muy buena\n", Rating: 4}.Normalise()
	assert.Equal(t, "Ana", d.Author)
	assert.Equal(t, "Muy buena", d.Content)
	assert.Equal(t, 4, d.Rating)
}

func TestAverageRating(t *testing.T) {
	assert.InDelta(t, 0.0, AverageRating(nil), 0.0001)

	comments := []Comment{{Rating: 5}, {Rating: 4}, {Rating: 3}}
	assert.InDelta(t, 4.0, AverageRating(comments), 0.0001)

	assert.InDelta(t, 4.5, AverageRating([]Comment{{Rating: 5}, {Rating: 4}}), 0.0001)
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "4.0", FormatRating(4))
	assert.Equal(t, "3.7", FormatRating(11.0/3.0))
	assert.Equal(t, "0.0", FormatRating(0))
}

func TestNewRecipeWithComments(t *testing.T) {
	r := Recipe{ID: 9, Name: "Arepas"}
	comments := []Comment{{ID: 3, Rating: 3}, {ID: 2, Rating: 4}, {ID: 1, Rating: 5}}

	summary := NewRecipeWithComments(r, comments)

	assert.Equal(t, int64(9), summary.ID)
	assert.Equal(t, 3, summary.TotalComments)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.0001)
	assert.Equal(t, "4.0", FormatRating(summary.AverageRating))
}
