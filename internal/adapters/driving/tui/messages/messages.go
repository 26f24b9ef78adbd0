// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/recetasu/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLanding is the introduction screen.
	ViewLanding ViewType = iota
	// ViewRecipes is the searchable recipe list.
	ViewRecipes
	// ViewDetail shows a single recipe and its comments.
	ViewDetail
	// ViewForm is the create/edit recipe form.
	ViewForm
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLanding:
		return "landing"
	case ViewRecipes:
		return "recipes"
	case ViewDetail:
		return "detail"
	case ViewForm:
		return "form"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// LoadRequested asks the recipes view to (re)load the collection.
type LoadRequested struct{}

// RecipesLoaded signals a Load finished. The collection itself is read
// from the catalog service.
type RecipesLoaded struct {
	Err error
}

// RecipeSelected signals a recipe was opened for detail view.
type RecipeSelected struct {
	Recipe domain.Recipe
}

// FormRequested opens the recipe form. A nil Recipe means create.
type FormRequested struct {
	Recipe *domain.Recipe
}

// FormCancelled signals the form was closed without saving.
type FormCancelled struct{}

// RecipeSaved signals a create or update completed.
type RecipeSaved struct {
	Recipe  domain.Recipe
	Created bool
	Err     error
}

// RecipeDeleted signals a delete completed.
type RecipeDeleted struct {
	ID  int64
	Err error
}

// CommentsLoaded carries a recipe's comments and rating summary.
type CommentsLoaded struct {
	RecipeID int64
	Summary  domain.RecipeWithComments
	Err      error
}

// CommentAdded signals a comment was stored.
type CommentAdded struct {
	Comment domain.Comment
	Err     error
}
