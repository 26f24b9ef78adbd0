package form

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recetasu/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driving"
	"github.com/custodia-labs/recetasu/internal/core/services"
)

func newView(t *testing.T, seed ...domain.Recipe) (*View, driving.CatalogService, *memory.RecipeRemote) {
	t.Helper()
	remote := memory.NewRecipeRemote(seed...)
	catalog := services.NewCatalogService(remote, nil)
	v := NewView(nil, nil, catalog)
	v.SetDimensions(120, 60)
	return v, catalog, remote
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func tab(v *View, n int) {
	for i := 0; i < n; i++ {
		v.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
}

func ctrl(v *View, t tea.KeyType) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: t})
	return cmd
}

// fillArepas types the Arepas recipe into a fresh form.
func fillArepas(v *View) {
	typeText(v, "Arepas")
	tab(v, 1) // category: Desayunos is first
	tab(v, 1)
	typeText(v, "4")
	tab(v, 1)
	typeText(v, "30")
	tab(v, 1)
	typeText(v, "harina de maíz")
	tab(v, 1)
	typeText(v, "2")
	tab(v, 1)
	typeText(v, "tazas")
	ctrl(v, tea.KeyCtrlA)
	typeText(v, "agua")
	tab(v, 1)
	typeText(v, "2")
	tab(v, 1)
	typeText(v, "tazas")
	tab(v, 1)
	typeText(v, "Mezclar y asar.")
}

func TestView_CreateArepas(t *testing.T) {
	v, catalog, _ := newView(t)
	fillArepas(v)

	draft, err := v.Draft()
	require.NoError(t, err)
	assert.Equal(t, "Desayunos", draft.Category)
	assert.Len(t, draft.Ingredients, 2)

	cmd := ctrl(v, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	assert.True(t, v.Saving())

	saved, ok := cmd().(messages.RecipeSaved)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.True(t, saved.Created)
	assert.Positive(t, saved.Recipe.ID)
	assert.Equal(t, "Arepas", saved.Recipe.Name)

	v.Update(saved)
	assert.False(t, v.Saving())
	assert.Equal(t, 1, catalog.Len())
}

func TestView_ValidationAlertKeepsFormOpen(t *testing.T) {
	v, catalog, _ := newView(t)
	typeText(v, "Arepas")

	cmd := ctrl(v, tea.KeyCtrlS)

	assert.Nil(t, cmd)
	assert.NotEmpty(t, v.Alert())
	assert.Equal(t, 0, catalog.Len())
}

func TestView_NonNumericServings(t *testing.T) {
	v, _, _ := newView(t)
	tab(v, 2)
	typeText(v, "four")

	_, err := v.Draft()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "servings")
}

func TestView_SaveFailureShowsAlert(t *testing.T) {
	v, catalog, remote := newView(t)
	remote.Fail(memory.OpCreate, &domain.APIError{Op: "create recipe", StatusCode: 500, Message: "db down"})
	fillArepas(v)

	cmd := ctrl(v, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Contains(t, v.Alert(), "Could not save the recipe")
	assert.Contains(t, v.View(), "db down")
	assert.Equal(t, 0, catalog.Len())
}

func TestView_EditKeepsID(t *testing.T) {
	existing := domain.Recipe{
		ID: 42, Name: "Sopa", Category: "Sopas", Servings: 2, PreparationTime: 20,
		Ingredients: []domain.Ingredient{{Name: "papa"}}, Preparation: "Hervir.",
	}
	v, catalog, _ := newView(t, existing)
	require.NoError(t, catalog.Load(t.Context()))

	v.Open(&existing)
	require.NotNil(t, v.Editing())
	assert.Equal(t, "Sopas", v.Category())
	assert.Contains(t, v.View(), "Edit recipe")

	typeText(v, " de papa")
	save := ctrl(v, tea.KeyCtrlS)
	require.NotNil(t, save)
	saved, ok := save().(messages.RecipeSaved)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.False(t, saved.Created)
	assert.Equal(t, int64(42), saved.Recipe.ID)

	got, err := catalog.Get(42)
	require.NoError(t, err)
	assert.Equal(t, "Sopa de papa", got.Name)
}

func TestView_UnknownCategoryIsOffered(t *testing.T) {
	v, _, _ := newView(t)
	r := domain.Recipe{ID: 1, Name: "Kimchi", Category: "Fermentados"}

	v.Open(&r)

	assert.Equal(t, "Fermentados", v.Category())
}

func TestView_CategoryCycles(t *testing.T) {
	v, _, _ := newView(t)
	tab(v, 1)

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "Almuerzos", v.Category())

	v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "Vegetarianas", v.Category(), "wraps around")
}

func TestView_IngredientRows(t *testing.T) {
	v, _, _ := newView(t)
	assert.Equal(t, 1, v.Rows())

	tab(v, 4)
	assert.Nil(t, ctrl(v, tea.KeyCtrlD), "last row stays")
	assert.Equal(t, 1, v.Rows())

	ctrl(v, tea.KeyCtrlA)
	ctrl(v, tea.KeyCtrlA)
	assert.Equal(t, 3, v.Rows())

	ctrl(v, tea.KeyCtrlD)
	assert.Equal(t, 2, v.Rows())
}

func TestView_BlankRowsSkipped(t *testing.T) {
	v, _, _ := newView(t)
	tab(v, 4)
	typeText(v, "sal")
	ctrl(v, tea.KeyCtrlA)

	draft, err := v.Draft()
	require.NoError(t, err)
	assert.Equal(t, []domain.Ingredient{{Name: "sal"}}, draft.Ingredients)
}

func TestView_EscCancels(t *testing.T) {
	v, _, _ := newView(t)

	cmd := ctrl(v, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, messages.FormCancelled{}, cmd())
}
