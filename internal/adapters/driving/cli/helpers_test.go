package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/recetasu/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/services"
)

func seedRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			ID:              1,
			Name:            "Arepas",
			Category:        "Desayunos",
			Servings:        4,
			PreparationTime: 30,
			Ingredients: []domain.Ingredient{
				{Name: "harina de maíz", Quantity: "2", Unit: "tazas"},
				{Name: "sal"},
			},
			Preparation: "Mezclar.\nAsar.",
		},
		{
			ID:              2,
			Name:            "Flan",
			Category:        "Postres",
			Servings:        6,
			PreparationTime: 60,
			Ingredients: []domain.Ingredient{
				{Name: "huevos", Quantity: "4"},
				{Name: "leche", Quantity: "500", Unit: "ml"},
			},
			Preparation: "Batir y hornear a baño maría.",
		},
	}
}

// setupTestServices injects memory-backed services and restores the
// previous ones when the test ends.
func setupTestServices(t *testing.T, seed ...domain.Recipe) *memory.RecipeRemote {
	t.Helper()

	oldCatalog, oldComments, oldSettings := catalogService, commentService, settingsService
	t.Cleanup(func() {
		catalogService, commentService, settingsService = oldCatalog, oldComments, oldSettings
	})

	remote := memory.NewRecipeRemote(seed...)
	store := memory.NewCommentStore()
	SetServices(Services{
		Catalog:  services.NewCatalogService(remote, store),
		Comments: services.NewCommentService(store),
		Settings: services.NewSettingsService(memory.NewConfigStore()),
	})
	return remote
}

// runCommand executes the root command with args and returns everything
// written to stdout and stderr.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCommandWithInput(t, "", args...)
}

func runCommandWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(t.Context())
	return buf.String(), err
}

// resetFlags restores every flag in the tree to its default so values
// from one test do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
