package status

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recetasu/internal/adapters/driving/tui/keymap"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
	assert.Contains(t, bar.View(), "Ready")
}

func TestBar_Count(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetCount(1)
	assert.Contains(t, bar.View(), "1 recipe")

	bar.SetCount(7)
	assert.Contains(t, bar.View(), "7 recipes")
}

func TestBar_BusyStatesReturnTick(t *testing.T) {
	bar := NewBar(nil, nil)

	cmd := bar.SetState(StateLoading)
	assert.NotNil(t, cmd)
	assert.True(t, bar.Busy())
	assert.Contains(t, bar.View(), "Loading recipes")

	assert.Nil(t, bar.SetState(StateSaving), "already busy")
	assert.Contains(t, bar.View(), "Saving")

	assert.Nil(t, bar.SetState(StateReady))
	assert.False(t, bar.Busy())
}

func TestBar_Error(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)

	assert.Contains(t, bar.View(), "Error")

	bar.SetMessage("boom")
	assert.Contains(t, bar.View(), "Error: boom")
}

func TestBar_Hints(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(200)

	assert.Contains(t, bar.View(), "q: quit")

	bar.SetHints([]key.Binding{km.New})
	view := bar.View()
	assert.Contains(t, view, "n: new")
	assert.NotContains(t, view, "q: quit")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetCount(3)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Equal(t, 0, bar.Count())
}

func TestBar_ViewIsSingleLine(t *testing.T) {
	km := keymap.DefaultKeyMap()

	for _, width := range []int{30, 40, 80, 200} {
		bar := NewBar(nil, km)
		bar.SetWidth(width)
		bar.SetCount(12)

		view := bar.View()
		assert.Equal(t, 0, strings.Count(view, "\n"), "width %d", width)
		assert.LessOrEqual(t, lipgloss.Width(view), width, "width %d", width)
	}
}

func TestBar_HintsKeptWhole(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(80)
	bar.SetHints([]key.Binding{km.New, km.Edit, km.Delete})

	view := bar.View()
	assert.Contains(t, view, "n: new")
	assert.Equal(t, 0, strings.Count(view, "\n"))
}
