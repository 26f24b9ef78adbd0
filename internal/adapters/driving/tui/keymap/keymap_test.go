package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"search", km.Search, []string{"/"}},
		{"category", km.Category, []string{"tab"}},
		{"new", km.New, []string{"n"}},
		{"edit", km.Edit, []string{"e"}},
		{"delete", km.Delete, []string{"d"}},
		{"reload", km.Reload, []string{"r"}},
		{"confirm", km.Confirm, []string{"y"}},
		{"deny", km.Deny, []string{"n", "esc"}},
		{"save", km.Save, []string{"ctrl+s"}},
		{"rating", km.Right, []string{"right"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("up", km.Up))
	assert.False(t, Matches("j", km.Up))
	assert.False(t, Matches("", km.Quit))
}

func TestHelpLine(t *testing.T) {
	km := DefaultKeyMap()

	line := HelpLine([]key.Binding{km.Search, km.New})
	assert.Equal(t, "[/] search  [n] new", line)
	assert.Empty(t, HelpLine(nil))
}

func TestFullHelp_CoversEveryGroup(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()
	require.Len(t, groups, 5)
	for _, g := range groups {
		assert.NotEmpty(t, g)
	}
	assert.NotEmpty(t, km.RecipesHelp())
	assert.NotEmpty(t, km.DetailHelp())
	assert.NotEmpty(t, km.FormHelp())
	assert.Len(t, km.ShortHelp(), 2)
}
