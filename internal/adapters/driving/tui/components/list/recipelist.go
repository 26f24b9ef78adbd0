// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recetasu/internal/core/domain"
)

// previewCount is how many ingredient names a card shows.
const previewCount = 3

// cardHeight is the rendered height of one card including its border.
const cardHeight = 5

// RecipeList displays recipes as a navigable list of cards.
type RecipeList struct {
	recipes  []domain.Recipe
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRecipeList creates a new recipe list component.
func NewRecipeList(s *styles.Styles) *RecipeList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RecipeList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the recipe list.
func (r *RecipeList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *RecipeList) Update(msg tea.Msg) (*RecipeList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible cards.
func (r *RecipeList) View() string {
	if len(r.recipes) == 0 {
		return ""
	}

	visible := r.height / cardHeight
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.recipes) {
		end = len(r.recipes)
	}

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, r.renderCard(i, r.recipes[i]))
	}
	return strings.Join(cards, "\n")
}

func (r *RecipeList) renderCard(index int, recipe domain.Recipe) string {
	style := r.styles.Card
	if index == r.selected {
		style = r.styles.SelectedCard
	}
	width := r.width - 4
	if width < 30 {
		width = 30
	}

	category := recipe.Category
	if category == "" {
		category = "Uncategorised"
	}

	title := r.styles.Title.Render(truncate(recipe.Name, width-4))
	meta := r.styles.Tag.Render(category) + r.styles.Muted.Render(fmt.Sprintf(
		"  ·  %d min  ·  %d servings  ·  %d ingredients",
		recipe.PreparationTime, recipe.Servings, len(recipe.Ingredients)))
	preview := r.styles.Normal.Render(truncate(IngredientPreview(recipe.Ingredients), width-4))

	return style.Width(width).Render(title + "\n" + meta + "\n" + preview)
}

// IngredientPreview lists the first ingredient names and how many remain.
func IngredientPreview(ingredients []domain.Ingredient) string {
	if len(ingredients) == 0 {
		return "No ingredients"
	}
	n := len(ingredients)
	if n > previewCount {
		n = previewCount
	}
	names := make([]string, 0, n)
	for _, ing := range ingredients[:n] {
		names = append(names, ing.Name)
	}
	out := strings.Join(names, ", ")
	if rest := len(ingredients) - n; rest > 0 {
		out += fmt.Sprintf(" +%d more", rest)
	}
	return out
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit < 4 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// SetRecipes replaces the displayed recipes, keeping the selection in range.
func (r *RecipeList) SetRecipes(recipes []domain.Recipe) {
	r.recipes = recipes
	if r.selected >= len(recipes) {
		r.selected = len(recipes) - 1
	}
	if r.selected < 0 {
		r.selected = 0
	}
}

// Recipes returns the displayed recipes.
func (r *RecipeList) Recipes() []domain.Recipe {
	return r.recipes
}

// Selected returns the index of the selected recipe.
func (r *RecipeList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RecipeList) SetSelected(index int) {
	if index >= 0 && index < len(r.recipes) {
		r.selected = index
	}
}

// SelectedRecipe returns the currently selected recipe, or nil if none.
func (r *RecipeList) SelectedRecipe() *domain.Recipe {
	if len(r.recipes) == 0 || r.selected < 0 || r.selected >= len(r.recipes) {
		return nil
	}
	rec := r.recipes[r.selected]
	return &rec
}

// MoveUp moves selection up.
func (r *RecipeList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *RecipeList) MoveDown() {
	if r.selected < len(r.recipes)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *RecipeList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of recipes.
func (r *RecipeList) Count() int {
	return len(r.recipes)
}

// IsEmpty returns whether the list is empty.
func (r *RecipeList) IsEmpty() bool {
	return len(r.recipes) == 0
}
