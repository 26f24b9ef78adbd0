package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recetasu/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/services"
)

func sampleRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			ID:              1,
			Name:            "Arepas",
			Category:        "Desayunos",
			Servings:        4,
			PreparationTime: 30,
			Ingredients: []domain.Ingredient{
				{Name: "harina de maíz", Quantity: "2", Unit: "tazas"},
				{Name: "sal", Quantity: "1", Unit: "cdta"},
			},
			Preparation: "Mezclar, formar y asar.",
		},
		{
			ID:              2,
			Name:            "Ceviche",
			Category:        "Almuerzos",
			Servings:        2,
			PreparationTime: 20,
			Ingredients: []domain.Ingredient{
				{Name: "pescado", Quantity: "500", Unit: "g"},
				{Name: "limón", Quantity: "6", Unit: ""},
			},
			Preparation: "Cortar y marinar.",
		},
	}
}

// newTestServer wires real services over in-memory adapters.
func newTestServer(t *testing.T, opts ...Option) (*Server, *memory.RecipeRemote) {
	t.Helper()
	remote := memory.NewRecipeRemote(sampleRecipes()...)
	store := memory.NewCommentStore()
	server, err := NewServer(&Ports{
		Catalog:  services.NewCatalogService(remote, store),
		Comments: services.NewCommentService(store),
	}, opts...)
	require.NoError(t, err)
	return server, remote
}

func TestNewServer(t *testing.T) {
	t.Run("nil catalog service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCatalogService)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		assert.ErrorIs(t, err, ErrMissingCatalogService)
		assert.Nil(t, server)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, _ := newTestServer(t)
		assert.NotNil(t, server)
		assert.Equal(t, DefaultCORSOrigins, server.corsOrigins)
	})

	t.Run("cors origins option", func(t *testing.T) {
		server, _ := newTestServer(t, WithCORSOrigins([]string{"https://app.example.com"}))
		assert.Equal(t, []string{"https://app.example.com"}, server.corsOrigins)
	})

	t.Run("empty cors origins keeps defaults", func(t *testing.T) {
		server, _ := newTestServer(t, WithCORSOrigins(nil))
		assert.Equal(t, DefaultCORSOrigins, server.corsOrigins)
	})
}

func TestPorts_Validate(t *testing.T) {
	remote := memory.NewRecipeRemote()
	catalog := services.NewCatalogService(remote, nil)

	t.Run("nil catalog service returns error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingCatalogService)
	})

	t.Run("catalog only is valid", func(t *testing.T) {
		ports := &Ports{Catalog: catalog}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Catalog:  catalog,
			Comments: services.NewCommentService(memory.NewCommentStore()),
		}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_Handler_CORS(t *testing.T) {
	server, _ := newTestServer(t, WithCORSOrigins([]string{"https://app.example.com"}))
	handler := server.Handler()

	// Browsers send requested headers lowercased and comma-separated.
	preflight := func(origin string, headers ...string) *httptest.ResponseRecorder {
		if len(headers) == 0 {
			headers = []string{"content-type,mcp-session-id"}
		}
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", headers[0])
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allowed origin", func(t *testing.T) {
		rec := preflight("https://app.example.com")
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("protocol version header", func(t *testing.T) {
		rec := preflight("https://app.example.com", "content-type,mcp-protocol-version,mcp-session-id")
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted header", func(t *testing.T) {
		rec := preflight("https://app.example.com", "content-type,x-api-key")
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		rec := preflight("https://evil.example.com")
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestServer_InMemorySession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, _ := newTestServer(t)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"list_recipes", "get_recipe", "create_recipe", "update_recipe",
		"delete_recipe", "list_categories", "add_comment", "list_comments",
	}, names)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "list_recipes",
		Arguments: map[string]any{"term": "maíz"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
}
