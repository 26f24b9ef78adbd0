package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

var commentCmd = &cobra.Command{
	Use:     "comment",
	Aliases: []string{"comments"},
	Short:   "Review recipes",
	Long: `Add and list reviews on recipes.

Comments are kept locally and are never sent to the recipe service.
With the default memory backend they are lost when recetasu exits;
set comments.backend to sqlite to keep them.`,
}

var commentAddCmd = &cobra.Command{
	Use:   "add <recipe-id>",
	Short: "Add a comment to a recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentAdd,
}

var commentListCmd = &cobra.Command{
	Use:   "list <recipe-id>",
	Short: "List a recipe's comments, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentList,
}

func init() {
	commentAddCmd.Flags().StringP("author", "a", "", "your name")
	commentAddCmd.Flags().IntP("rating", "r", domain.MaxRating, "rating from 1 to 5")
	commentAddCmd.Flags().StringP("content", "m", "", "comment text")

	commentListCmd.Flags().Bool("json", false, "output as JSON")

	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentListCmd)
	rootCmd.AddCommand(commentCmd)
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	if commentService == nil {
		return errors.New("comment service not configured")
	}
	recipe, err := lookupRecipe(cmd, args[0])
	if err != nil {
		return err
	}

	author, _ := cmd.Flags().GetString("author")
	rating, _ := cmd.Flags().GetInt("rating")
	content, _ := cmd.Flags().GetString("content")

	comment, err := commentService.Add(cmd.Context(), recipe.ID, domain.CommentDraft{
		Author:  author,
		Content: content,
		Rating:  rating,
	})
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	cmd.Printf("Added comment %d to %s (%s)\n", comment.ID, recipe.Name, stars(comment.Rating))
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.Comments.Backend == domain.CommentBackendMemory {
			cmd.Println("Note: comments are kept in memory and will be lost when recetasu exits.")
		}
	}
	return nil
}

func runCommentList(cmd *cobra.Command, args []string) error {
	if commentService == nil {
		return errors.New("comment service not configured")
	}
	recipe, err := lookupRecipe(cmd, args[0])
	if err != nil {
		return err
	}

	summary, err := commentService.Summary(cmd.Context(), recipe)
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, summary)
	}

	cmd.Printf("%s\n", recipe.Name)
	if summary.TotalComments == 0 {
		cmd.Println("No comments yet.")
		return nil
	}
	cmd.Printf("Average rating: %s (%d reviews)\n\n", domain.FormatRating(summary.AverageRating), summary.TotalComments)
	for _, c := range summary.Comments {
		cmd.Printf("  %s  %s  %s\n", stars(c.Rating), c.Author, c.CreatedAt.Local().Format("2006-01-02 15:04"))
		cmd.Printf("    %s\n", c.Content)
	}
	return nil
}

func lookupRecipe(cmd *cobra.Command, arg string) (domain.Recipe, error) {
	id, err := parseID(arg)
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := ensureCatalog(cmd); err != nil {
		return domain.Recipe{}, err
	}
	recipe, err := catalogService.Get(id)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("recipe %d: %w", id, err)
	}
	return recipe, nil
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > domain.MaxRating {
		rating = domain.MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", domain.MaxRating-rating)
}
