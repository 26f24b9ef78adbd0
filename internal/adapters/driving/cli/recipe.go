package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

var recipeCmd = &cobra.Command{
	Use:     "recipe",
	Aliases: []string{"recipes"},
	Short:   "Browse and manage recipes",
	Long: `Browse, search, create, edit and delete recipes held by the
remote recipe service.`,
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	Long: `List recipes, optionally narrowed by category and search term.

The search term matches recipe names and ingredient names, ignoring case.

Examples:
  recetasu recipe list
  recetasu recipe list --category Postres
  recetasu recipe list --search maíz --json`,
	Args: cobra.NoArgs,
	RunE: runRecipeList,
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipeShow,
}

var recipeCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories in use",
	Args:  cobra.NoArgs,
	RunE:  runRecipeCategories,
}

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a recipe",
	Long: `Create a recipe on the remote service.

Ingredients are given as name:quantity:unit and may be repeated.

Example:
  recetasu recipe add --name Arepas --category Desayunos \
    --servings 4 --time 30 \
    --ingredient "harina de maíz:2:tazas" --ingredient "agua:2:tazas" \
    --preparation "Mezclar y asar."`,
	Args: cobra.NoArgs,
	RunE: runRecipeAdd,
}

var recipeEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a recipe",
	Long: `Edit a recipe. Only the flags given override the stored fields;
--ingredient replaces the whole ingredient list.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipeEdit,
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipeDelete,
}

func init() {
	recipeListCmd.Flags().StringP("category", "c", "", "only show recipes in this category")
	recipeListCmd.Flags().StringP("search", "s", "", "filter by recipe or ingredient name")
	recipeListCmd.Flags().Bool("json", false, "output as JSON")

	recipeShowCmd.Flags().Bool("json", false, "output as JSON")
	recipeCategoriesCmd.Flags().Bool("json", false, "output as JSON")

	for _, c := range []*cobra.Command{recipeAddCmd, recipeEditCmd} {
		c.Flags().String("name", "", "recipe name")
		c.Flags().String("category", "", "recipe category")
		c.Flags().Int("servings", 0, "number of servings")
		c.Flags().Int("time", 0, "preparation time in minutes")
		c.Flags().StringArray("ingredient", nil, "ingredient as name:quantity:unit (repeatable)")
		c.Flags().String("preparation", "", "preparation steps")
	}

	recipeDeleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeCategoriesCmd)
	recipeCmd.AddCommand(recipeAddCmd)
	recipeCmd.AddCommand(recipeEditCmd)
	recipeCmd.AddCommand(recipeDeleteCmd)
	rootCmd.AddCommand(recipeCmd)
}

// stdinIsTerminal decides whether delete asks for confirmation.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ensureCatalog loads the collection once per process.
func ensureCatalog(cmd *cobra.Command) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	if catalogService.Loaded() {
		return nil
	}
	if err := catalogService.Load(cmd.Context()); err != nil {
		return errors.New(domain.DescribeLoadError(err))
	}
	return nil
}

func runRecipeList(cmd *cobra.Command, _ []string) error {
	if err := ensureCatalog(cmd); err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	search, _ := cmd.Flags().GetString("search")
	asJSON, _ := cmd.Flags().GetBool("json")

	filter := domain.RecipeFilter{Term: search, Category: category}
	recipes := catalogService.Filter(filter)

	if asJSON {
		return printJSON(cmd, recipes)
	}

	if len(recipes) == 0 {
		if filter.IsActive() {
			cmd.Println("No recipes match your search.")
		} else {
			cmd.Println("No recipes yet. Create one with 'recetasu recipe add'.")
		}
		return nil
	}

	if filter.IsActive() {
		cmd.Printf("Search results (%d):\n\n", len(recipes))
	} else {
		cmd.Printf("All recipes (%d):\n\n", len(recipes))
	}
	for _, r := range recipes {
		cmd.Printf("  [%d] %s\n", r.ID, r.Name)
		cmd.Printf("      %s · %d min · %d servings · %d ingredients\n",
			categoryLabel(r.Category), r.PreparationTime, r.Servings, len(r.Ingredients))
	}
	return nil
}

func runRecipeShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := ensureCatalog(cmd); err != nil {
		return err
	}

	recipe, err := catalogService.Get(id)
	if err != nil {
		return fmt.Errorf("recipe %d: %w", id, err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, recipe)
	}

	printRecipe(cmd, recipe)
	return nil
}

func runRecipeCategories(cmd *cobra.Command, _ []string) error {
	if err := ensureCatalog(cmd); err != nil {
		return err
	}

	categories := catalogService.Categories()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, categories)
	}

	if len(categories) == 0 {
		cmd.Println("No categories yet.")
		return nil
	}
	for _, c := range categories {
		cmd.Println(c)
	}
	return nil
}

func runRecipeAdd(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	var draft domain.RecipeDraft
	if err := applyRecipeFlags(cmd, &draft); err != nil {
		return err
	}

	recipe, err := catalogService.Add(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	cmd.Printf("Created recipe %d: %s\n", recipe.ID, recipe.Name)
	return nil
}

func runRecipeEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := ensureCatalog(cmd); err != nil {
		return err
	}

	existing, err := catalogService.Get(id)
	if err != nil {
		return fmt.Errorf("recipe %d: %w", id, err)
	}

	draft := existing.Draft()
	if err := applyRecipeFlags(cmd, &draft); err != nil {
		return err
	}

	updated, err := catalogService.Replace(cmd.Context(), draft.WithID(existing.ID))
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	cmd.Printf("Updated recipe %d: %s\n", updated.ID, updated.Name)
	return nil
}

func runRecipeDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := ensureCatalog(cmd); err != nil {
		return err
	}

	recipe, err := catalogService.Get(id)
	if err != nil {
		return fmt.Errorf("recipe %d: %w", id, err)
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && stdinIsTerminal() {
		cmd.Printf("Delete recipe %q? [y/N]: ", recipe.Name)
		if !confirm(bufio.NewReader(cmd.InOrStdin())) {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := catalogService.Remove(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	cmd.Printf("Deleted recipe %d: %s\n", recipe.ID, recipe.Name)
	return nil
}

// applyRecipeFlags copies the flags the user set onto the draft.
func applyRecipeFlags(cmd *cobra.Command, draft *domain.RecipeDraft) error {
	flags := cmd.Flags()

	if flags.Changed("name") {
		draft.Name, _ = flags.GetString("name")
	}
	if flags.Changed("category") {
		draft.Category, _ = flags.GetString("category")
	}
	if flags.Changed("servings") {
		draft.Servings, _ = flags.GetInt("servings")
	}
	if flags.Changed("time") {
		draft.PreparationTime, _ = flags.GetInt("time")
	}
	if flags.Changed("preparation") {
		draft.Preparation, _ = flags.GetString("preparation")
	}
	if flags.Changed("ingredient") {
		raw, _ := flags.GetStringArray("ingredient")
		ingredients := make([]domain.Ingredient, 0, len(raw))
		for _, entry := range raw {
			ing, err := parseIngredient(entry)
			if err != nil {
				return err
			}
			ingredients = append(ingredients, ing)
		}
		draft.Ingredients = ingredients
	}
	return nil
}

// parseIngredient parses "name:quantity:unit". Quantity and unit are optional.
func parseIngredient(entry string) (domain.Ingredient, error) {
	parts := strings.SplitN(entry, ":", 3)
	ing := domain.Ingredient{Name: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		ing.Quantity = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		ing.Unit = strings.TrimSpace(parts[2])
	}
	if ing.Name == "" {
		return domain.Ingredient{}, fmt.Errorf("%w: ingredient %q has no name", domain.ErrInvalidInput, entry)
	}
	return ing, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid recipe id %q", domain.ErrInvalidInput, arg)
	}
	return id, nil
}

func confirm(reader *bufio.Reader) bool {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func printRecipe(cmd *cobra.Command, r domain.Recipe) {
	cmd.Printf("%s\n", r.Name)
	cmd.Printf("%s\n\n", strings.Repeat("=", len([]rune(r.Name))))
	cmd.Printf("  ID:          %d\n", r.ID)
	cmd.Printf("  Category:    %s\n", categoryLabel(r.Category))
	cmd.Printf("  Servings:    %d\n", r.Servings)
	cmd.Printf("  Time:        %d min\n", r.PreparationTime)
	cmd.Println()
	cmd.Println("Ingredients:")
	for _, ing := range r.Ingredients {
		cmd.Printf("  - %s\n", formatIngredient(ing))
	}
	cmd.Println()
	cmd.Println("Preparation:")
	for _, line := range strings.Split(r.Preparation, "\n") {
		cmd.Printf("  %s\n", line)
	}
}

func formatIngredient(ing domain.Ingredient) string {
	amount := strings.TrimSpace(ing.Quantity + " " + ing.Unit)
	if amount == "" {
		return ing.Name
	}
	return fmt.Sprintf("%s (%s)", ing.Name, amount)
}

func categoryLabel(c string) string {
	if c == "" {
		return "Uncategorised"
	}
	return c
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
