package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for recetasu resources.
	uriScheme = "recetasu://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "recipes",
		Name:        "recipes",
		Description: "Every recipe in the catalog",
		MIMEType:    "application/json",
	}, s.handleRecipesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Categories used by the catalog",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	// Template for a single recipe with its comments.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "recipes/{recipeId}",
		Name:        "recipe",
		Description: "A recipe with its comments and average rating",
		MIMEType:    "application/json",
	}, s.handleRecipeResource)
}

// handleRecipesResource returns the full recipe list.
func (s *Server) handleRecipesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}

	recipes := s.ports.Catalog.Recipes()
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return jsonResource(req.Params.URI, recipes)
}

// handleCategoriesResource returns the sorted category list.
func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}

	categories := s.ports.Catalog.Categories()
	if categories == nil {
		categories = []string{}
	}
	return jsonResource(req.Params.URI, categories)
}

// handleRecipeResource returns one recipe and its reviews.
func (s *Server) handleRecipeResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// recetasu://recipes/{recipeId}
	id := extractRecipeID(req.Params.URI)
	if id == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}

	recipe, err := s.ports.Catalog.Get(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, err
	}

	type recipeInfo struct {
		domain.Recipe
		Comments      []CommentOutput `json:"comments"`
		AverageRating float64         `json:"averageRating"`
		TotalComments int             `json:"totalComments"`
	}

	info := recipeInfo{Recipe: recipe, Comments: []CommentOutput{}}
	if s.ports.Comments != nil {
		summary, err := s.ports.Comments.Summary(ctx, recipe)
		if err != nil {
			return nil, fmt.Errorf("loading comments: %w", err)
		}
		for _, c := range summary.Comments {
			info.Comments = append(info.Comments, toCommentOutput(c))
		}
		info.AverageRating = summary.AverageRating
		info.TotalComments = summary.TotalComments
	}

	return jsonResource(req.Params.URI, info)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRecipeID extracts the recipe ID from a URI like recetasu://recipes/{recipeId}.
// It returns 0 when the URI does not name a positive id.
func extractRecipeID(uri string) int64 {
	const prefix = uriScheme + "recipes/"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id < 1 {
		return 0
	}
	return id
}
