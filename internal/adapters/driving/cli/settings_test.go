package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

func TestSettingsShow(t *testing.T) {
	setupTestServices(t)

	for _, args := range [][]string{{"settings"}, {"settings", "show"}} {
		out, err := runCommand(t, args...)
		require.NoError(t, err)
		assert.Contains(t, out, "[API]")
		assert.Contains(t, out, "Base URL: "+domain.DefaultAppSettings().API.BaseURL)
		assert.Contains(t, out, "[Comments]")
		assert.Contains(t, out, domain.CommentBackendMemory.Description())
	}
}

func TestSettingsSet(t *testing.T) {
	t.Run("stores the value", func(t *testing.T) {
		setupTestServices(t)

		out, err := runCommand(t, "settings", "set", "api.base_url", "http://recipes.local:9000")
		require.NoError(t, err)
		assert.Contains(t, out, "Set api.base_url = http://recipes.local:9000")

		settings, err := settingsService.Get()
		require.NoError(t, err)
		assert.Equal(t, "http://recipes.local:9000", settings.API.BaseURL)
	})

	t.Run("rejects bad values", func(t *testing.T) {
		setupTestServices(t)

		_, err := runCommand(t, "settings", "set", "comments.backend", "postgres")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("requires key and value", func(t *testing.T) {
		setupTestServices(t)

		_, err := runCommand(t, "settings", "set", "api.base_url")
		assert.Error(t, err)
	})
}

func TestSettingsWizard(t *testing.T) {
	t.Run("applies answers", func(t *testing.T) {
		setupTestServices(t)

		out, err := runCommandWithInput(t, "https://api.example.com\n2\n", "settings", "wizard")
		require.NoError(t, err)
		assert.Contains(t, out, "Settings saved.")

		settings, err := settingsService.Get()
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", settings.API.BaseURL)
		assert.Equal(t, domain.CommentBackendSQLite, settings.Comments.Backend)
	})

	t.Run("blank answers keep current values", func(t *testing.T) {
		setupTestServices(t)
		before, err := settingsService.Get()
		require.NoError(t, err)

		_, err = runCommandWithInput(t, "\n\n", "settings", "wizard")
		require.NoError(t, err)

		after, err := settingsService.Get()
		require.NoError(t, err)
		assert.Equal(t, before.API.BaseURL, after.API.BaseURL)
		assert.Equal(t, before.Comments.Backend, after.Comments.Backend)
	})
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{"empty uses default", "", 2, 1, 1},
		{"valid choice", "2", 2, 1, 2},
		{"zero", "0", 2, 1, 1},
		{"too high", "3", 2, 1, 1},
		{"not a number", "sqlite", 2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}
