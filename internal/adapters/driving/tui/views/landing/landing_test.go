package landing

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/messages"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, "")

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.items, 3)
	assert.Equal(t, "Initialising...", view.View())
}

func TestView_Render(t *testing.T) {
	view := NewView(nil, "http://localhost:3000")
	view.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	out := view.View()
	assert.Contains(t, out, "RecetasU")
	assert.Contains(t, out, "Search by recipe name or ingredient")
	assert.Contains(t, out, "Desayunos")
	assert.Contains(t, out, "Vegetarianas")
	assert.Contains(t, out, "Browse recipes")
	assert.Contains(t, out, "http://localhost:3000")
}

func TestView_EnterOpensRecipes(t *testing.T) {
	view := NewView(nil, "")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewRecipes}, cmd())
}

func TestView_Navigation(t *testing.T) {
	view := NewView(nil, "")

	view.Update(runes("j"))
	assert.Equal(t, 1, view.Selected())
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, view.Selected(), "stops at last item")

	view.Update(runes("k"))
	assert.Equal(t, 1, view.Selected())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewHelp}, cmd())
}

func TestView_Quit(t *testing.T) {
	view := NewView(nil, "")

	_, cmd := view.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	view.selected = 2
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
