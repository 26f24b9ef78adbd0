package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the recipe service connection and comment storage.

Settings are stored in ~/.recetasu/config.toml. The environment variables
RECETASU_API_URL, RECETASU_API_TIMEOUT, RECETASU_API_RPS and
RECETASU_COMMENTS_BACKEND override the file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  api.base_url             recipe service URL (http or https)
  api.timeout_seconds      request timeout in seconds
  api.requests_per_second  client-side request rate limit
  comments.backend         memory or sqlite`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %ds\n", settings.API.TimeoutSeconds)
	cmd.Printf("  Rate limit: %g requests/s\n", settings.API.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Comments]")
	cmd.Printf("  Backend: %s\n", settings.Comments.Backend.Description())

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("Set %s = %s\n", args[0], strings.TrimSpace(args[1]))
	cmd.Println("Restart running recetasu sessions to apply the change.")
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("RecetasU Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Recipe service")
	cmd.Println("----------------------")
	cmd.Printf("Base URL [%s]: ", settings.API.BaseURL)
	if input := readLine(reader); input != "" {
		if err := settingsService.Set(services.KeyAPIBaseURL, input); err != nil {
			return fmt.Errorf("failed to set base URL: %w", err)
		}
	}
	cmd.Println()

	cmd.Println("Step 2: Comment storage")
	cmd.Println("-----------------------")
	backends := domain.AllCommentBackends()
	current := 1
	for i, b := range backends {
		if b == settings.Comments.Backend {
			current = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	choice := parseChoice(readLine(reader), len(backends), current)
	if err := settingsService.Set(services.KeyCommentsBackend, backends[choice-1].String()); err != nil {
		return fmt.Errorf("failed to set comments backend: %w", err)
	}
	cmd.Println()

	cmd.Println("Settings saved.")
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
