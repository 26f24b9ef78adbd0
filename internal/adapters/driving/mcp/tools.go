package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

// IngredientInput is a single ingredient line in tool input.
type IngredientInput struct {
	Name     string `json:"name" jsonschema:"ingredient name"`
	Quantity string `json:"quantity,omitempty" jsonschema:"amount as free text (e.g. 200 or 1/2)"`
	Unit     string `json:"unit,omitempty" jsonschema:"unit as free text (e.g. g or tazas)"`
}

// ListRecipesInput is the input schema for the list_recipes tool.
type ListRecipesInput struct {
	Term     string `json:"term,omitempty" jsonschema:"case-insensitive text matched against recipe and ingredient names"`
	Category string `json:"category,omitempty" jsonschema:"exact category to keep"`
}

// ListRecipesOutput is the output schema for the list_recipes tool.
type ListRecipesOutput struct {
	Recipes []domain.Recipe `json:"recipes"`
	Count   int             `json:"count"`
}

// RecipeIDInput identifies a single recipe.
type RecipeIDInput struct {
	ID int64 `json:"id" jsonschema:"recipe identifier"`
}

// RecipeOutput is a recipe with its rating summary.
type RecipeOutput struct {
	Recipe        domain.Recipe `json:"recipe"`
	AverageRating float64       `json:"average_rating"`
	TotalComments int           `json:"total_comments"`
}

// CreateRecipeInput is the input schema for the create_recipe tool.
type CreateRecipeInput struct {
	Name            string            `json:"name" jsonschema:"recipe title"`
	Category        string            `json:"category,omitempty" jsonschema:"category label"`
	Servings        int               `json:"servings" jsonschema:"number of portions (at least 1)"`
	PreparationTime int               `json:"preparation_time" jsonschema:"preparation time in minutes (at least 1)"`
	Ingredients     []IngredientInput `json:"ingredients" jsonschema:"ingredients in order"`
	Preparation     string            `json:"preparation" jsonschema:"step-by-step instructions"`
}

// UpdateRecipeInput is the input schema for the update_recipe tool.
// Omitted fields keep their current value.
type UpdateRecipeInput struct {
	ID              int64             `json:"id" jsonschema:"recipe identifier"`
	Name            *string           `json:"name,omitempty" jsonschema:"new title"`
	Category        *string           `json:"category,omitempty" jsonschema:"new category"`
	Servings        *int              `json:"servings,omitempty" jsonschema:"new number of portions"`
	PreparationTime *int              `json:"preparation_time,omitempty" jsonschema:"new preparation time in minutes"`
	Ingredients     []IngredientInput `json:"ingredients,omitempty" jsonschema:"replacement ingredient list"`
	Preparation     *string           `json:"preparation,omitempty" jsonschema:"new instructions"`
}

// DeleteRecipeOutput is the output schema for the delete_recipe tool.
type DeleteRecipeOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

// ListCategoriesInput takes no arguments.
type ListCategoriesInput struct{}

// ListCategoriesOutput is the output schema for the list_categories tool.
type ListCategoriesOutput struct {
	Categories []string `json:"categories"`
}

// AddCommentInput is the input schema for the add_comment tool.
type AddCommentInput struct {
	RecipeID int64  `json:"recipe_id" jsonschema:"recipe to review"`
	Author   string `json:"author" jsonschema:"reviewer name"`
	Rating   int    `json:"rating" jsonschema:"rating from 1 to 5"`
	Content  string `json:"content" jsonschema:"review text"`
}

// CommentOutput is a single comment. CreatedAt is RFC 3339.
type CommentOutput struct {
	ID        int64  `json:"id"`
	RecipeID  int64  `json:"recipe_id"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ListCommentsOutput is the output schema for the list_comments tool.
type ListCommentsOutput struct {
	Comments      []CommentOutput `json:"comments"`
	AverageRating float64         `json:"average_rating"`
	TotalComments int             `json:"total_comments"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_recipes",
		Description: "List recipes, optionally filtered by search term and category",
	}, s.handleListRecipes)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_recipe",
		Description: "Get a recipe with its average rating",
	}, s.handleGetRecipe)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_recipe",
		Description: "Create a new recipe",
	}, s.handleCreateRecipe)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_recipe",
		Description: "Update fields of an existing recipe",
	}, s.handleUpdateRecipe)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_recipe",
		Description: "Delete a recipe and its comments",
	}, s.handleDeleteRecipe)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the categories used by the catalog",
	}, s.handleListCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_comment",
		Description: "Add a rated comment to a recipe",
	}, s.handleAddComment)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_comments",
		Description: "List the comments of a recipe, newest first",
	}, s.handleListComments)
}

// ensureLoaded fetches the catalog on first use.
func (s *Server) ensureLoaded(ctx context.Context) error {
	if s.ports.Catalog.Loaded() {
		return nil
	}
	return s.ports.Catalog.Load(ctx)
}

func (s *Server) handleListRecipes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRecipesInput,
) (*mcp.CallToolResult, ListRecipesOutput, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, ListRecipesOutput{}, err
	}

	recipes := s.ports.Catalog.Filter(domain.RecipeFilter{
		Term:     input.Term,
		Category: input.Category,
	})
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return nil, ListRecipesOutput{Recipes: recipes, Count: len(recipes)}, nil
}

func (s *Server) handleGetRecipe(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecipeIDInput,
) (*mcp.CallToolResult, RecipeOutput, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, RecipeOutput{}, err
	}

	recipe, err := s.ports.Catalog.Get(input.ID)
	if err != nil {
		return nil, RecipeOutput{}, err
	}

	output := RecipeOutput{Recipe: recipe}
	if s.ports.Comments != nil {
		summary, err := s.ports.Comments.Summary(ctx, recipe)
		if err != nil {
			return nil, RecipeOutput{}, err
		}
		output.AverageRating = summary.AverageRating
		output.TotalComments = summary.TotalComments
	}
	return nil, output, nil
}

func (s *Server) handleCreateRecipe(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateRecipeInput,
) (*mcp.CallToolResult, domain.Recipe, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, domain.Recipe{}, err
	}

	draft := domain.RecipeDraft{
		Name:            input.Name,
		Category:        input.Category,
		Servings:        input.Servings,
		PreparationTime: input.PreparationTime,
		Ingredients:     toIngredients(input.Ingredients),
		Preparation:     input.Preparation,
	}
	recipe, err := s.ports.Catalog.Add(ctx, draft)
	if err != nil {
		return nil, domain.Recipe{}, err
	}
	return nil, recipe, nil
}

func (s *Server) handleUpdateRecipe(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateRecipeInput,
) (*mcp.CallToolResult, domain.Recipe, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, domain.Recipe{}, err
	}

	recipe, err := s.ports.Catalog.Get(input.ID)
	if err != nil {
		return nil, domain.Recipe{}, err
	}

	if input.Name != nil {
		recipe.Name = *input.Name
	}
	if input.Category != nil {
		recipe.Category = *input.Category
	}
	if input.Servings != nil {
		recipe.Servings = *input.Servings
	}
	if input.PreparationTime != nil {
		recipe.PreparationTime = *input.PreparationTime
	}
	if input.Ingredients != nil {
		recipe.Ingredients = toIngredients(input.Ingredients)
	}
	if input.Preparation != nil {
		recipe.Preparation = *input.Preparation
	}

	updated, err := s.ports.Catalog.Replace(ctx, recipe)
	if err != nil {
		return nil, domain.Recipe{}, err
	}
	return nil, updated, nil
}

func (s *Server) handleDeleteRecipe(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecipeIDInput,
) (*mcp.CallToolResult, DeleteRecipeOutput, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, DeleteRecipeOutput{}, err
	}

	recipe, err := s.ports.Catalog.Get(input.ID)
	if err != nil {
		return nil, DeleteRecipeOutput{}, err
	}
	if err := s.ports.Catalog.Remove(ctx, input.ID); err != nil {
		return nil, DeleteRecipeOutput{}, err
	}
	return nil, DeleteRecipeOutput{ID: recipe.ID, Name: recipe.Name, Deleted: true}, nil
}

func (s *Server) handleListCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCategoriesInput,
) (*mcp.CallToolResult, ListCategoriesOutput, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, ListCategoriesOutput{}, err
	}

	categories := s.ports.Catalog.Categories()
	if categories == nil {
		categories = []string{}
	}
	return nil, ListCategoriesOutput{Categories: categories}, nil
}

func (s *Server) handleAddComment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddCommentInput,
) (*mcp.CallToolResult, CommentOutput, error) {
	if s.ports.Comments == nil {
		return nil, CommentOutput{}, ErrCommentsUnavailable
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, CommentOutput{}, err
	}
	if _, err := s.ports.Catalog.Get(input.RecipeID); err != nil {
		return nil, CommentOutput{}, err
	}

	comment, err := s.ports.Comments.Add(ctx, input.RecipeID, domain.CommentDraft{
		Author:  input.Author,
		Rating:  input.Rating,
		Content: input.Content,
	})
	if err != nil {
		return nil, CommentOutput{}, err
	}
	return nil, toCommentOutput(comment), nil
}

func (s *Server) handleListComments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecipeIDInput,
) (*mcp.CallToolResult, ListCommentsOutput, error) {
	if s.ports.Comments == nil {
		return nil, ListCommentsOutput{}, ErrCommentsUnavailable
	}

	comments, err := s.ports.Comments.List(ctx, input.ID)
	if err != nil {
		return nil, ListCommentsOutput{}, err
	}

	output := ListCommentsOutput{
		Comments:      make([]CommentOutput, len(comments)),
		AverageRating: domain.AverageRating(comments),
		TotalComments: len(comments),
	}
	for i := range comments {
		output.Comments[i] = toCommentOutput(comments[i])
	}
	return nil, output, nil
}

func toIngredients(in []IngredientInput) []domain.Ingredient {
	out := make([]domain.Ingredient, 0, len(in))
	for _, ing := range in {
		out = append(out, domain.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	return out
}

func toCommentOutput(c domain.Comment) CommentOutput {
	return CommentOutput{
		ID:        c.ID,
		RecipeID:  c.RecipeID,
		Author:    c.Author,
		Rating:    c.Rating,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
