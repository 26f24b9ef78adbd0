package domain

import (
	"fmt"
	"strings"
	"time"
)

// Rating bounds for comments.
const (
	MinRating = 1
	MaxRating = 5
)

// Comment is a review left on a recipe.
type Comment struct {
	// ID is assigned by the comment store.
	ID int64 `json:"id"`

	// RecipeID links the comment to its recipe.
	RecipeID int64 `json:"recipeId"`

	// Author is the display name of the reviewer.
	Author string `json:"author"`

	// Content is the review text.
	Content string `json:"content"`

	// Rating is an integer from 1 to 5.
	Rating int `json:"rating"`

	// CreatedAt is serialised as RFC 3339.
	CreatedAt time.Time `json:"createdAt"`
}

// CommentDraft is a comment as submitted by a user.
type CommentDraft struct {
	Author  string
	Content string
	Rating  int
}

// Normalise trims surrounding whitespace from the text fields.
func (d CommentDraft) Normalise() CommentDraft {
	d.Author = strings.TrimSpace(d.Author)
	d.Content = strings.TrimSpace(d.Content)
	return d
}

// Validate checks the draft after trimming.
func (d CommentDraft) Validate() error {
	d = d.Normalise()
	if d.Author == "" {
		return invalid("author", "author is required")
	}
	if d.Content == "" {
		return invalid("content", "comment is required")
	}
	if d.Rating < MinRating || d.Rating > MaxRating {
		return invalid("rating", fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}

// RecipeWithComments combines a recipe with its reviews.
type RecipeWithComments struct {
	Recipe
	Comments      []Comment
	AverageRating float64
	TotalComments int
}

// NewRecipeWithComments derives the rating summary for a recipe.
func NewRecipeWithComments(r Recipe, comments []Comment) RecipeWithComments {
	return RecipeWithComments{
		Recipe:        r,
		Comments:      comments,
		AverageRating: AverageRating(comments),
		TotalComments: len(comments),
	}
}

// AverageRating returns the mean rating, or 0 for no comments.
func AverageRating(comments []Comment) float64 {
	if len(comments) == 0 {
		return 0
	}
	sum := 0
	for _, c := range comments {
		sum += c.Rating
	}
	return float64(sum) / float64(len(comments))
}

// FormatRating renders an average with one decimal place.
func FormatRating(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}
