package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recetasu/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recetasu/internal/core/domain"
)

func arepas() domain.RecipeDraft {
	return domain.RecipeDraft{
		Name:     "Arepas",
		Servings: 4,
		Ingredients: []domain.Ingredient{
			{Name: "maíz", Quantity: "200", Unit: "g"},
		},
		Preparation:     "Mezclar, formar y asar.",
		PreparationTime: 20,
		Category:        "Desayunos",
	}
}

func seeded() []domain.Recipe {
	sopa := arepas()
	sopa.Name = "Sopa de lentejas"
	sopa.Category = "Sopas"
	sopa.Ingredients = []domain.Ingredient{{Name: "lentejas", Quantity: "1", Unit: "taza"}}
	return []domain.Recipe{arepas().WithID(1), sopa.WithID(2)}
}

func TestNewCatalogService(t *testing.T) {
	service := NewCatalogService(memory.NewRecipeRemote(), nil)
	require.NotNil(t, service)
	assert.False(t, service.Loaded())
	assert.Zero(t, service.Len())
}

func TestCatalogService_Load(t *testing.T) {
	remote := memory.NewRecipeRemote(seeded()...)
	service := NewCatalogService(remote, nil)

	require.NoError(t, service.Load(context.Background()))

	assert.True(t, service.Loaded())
	assert.Equal(t, 2, service.Len())
	assert.Equal(t, []string{"Desayunos", "Sopas"}, service.Categories())
}

func TestCatalogService_Load_FailureKeepsList(t *testing.T) {
	remote := memory.NewRecipeRemote(seeded()...)
	service := NewCatalogService(remote, nil)
	ctx := context.Background()
	require.NoError(t, service.Load(ctx))

	connErr := &domain.ConnectionError{Op: "list recipes", URL: "http://localhost:3000/recipes", Err: errors.New("refused")}
	remote.Fail(memory.OpList, connErr)

	err := service.Load(ctx)
	require.Error(t, err)
	assert.True(t, domain.IsConnectionError(err))
	assert.Equal(t, 2, service.Len())
	assert.Contains(t, domain.DescribeLoadError(err), "http://localhost:3000")
}

// Adding "Arepas" to an empty catalog appends it with the remote's new ID.
func TestCatalogService_Add_Arepas(t *testing.T) {
	remote := memory.NewRecipeRemote()
	service := NewCatalogService(remote, nil)
	ctx := context.Background()
	require.NoError(t, service.Load(ctx))

	created, err := service.Add(ctx, arepas())
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	recipes := service.Recipes()
	require.Len(t, recipes, 1)
	assert.Equal(t, "Arepas", recipes[0].Name)
	assert.Equal(t, created.ID, recipes[0].ID)

	got := service.Filter(domain.RecipeFilter{Term: "maíz"})
	require.Len(t, got, 1)
	assert.Equal(t, "Arepas", got[0].Name)
	assert.Empty(t, service.Filter(domain.RecipeFilter{Term: "chocolate"}))
}

func TestCatalogService_Add_InvalidDraftSkipsRemote(t *testing.T) {
	remote := memory.NewRecipeRemote()
	service := NewCatalogService(remote, nil)

	d := arepas()
	d.Name = ""
	_, err := service.Add(context.Background(), d)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, remote.Calls(memory.OpCreate))
	assert.Zero(t, service.Len())
}

func TestCatalogService_Add_RemoteFailure(t *testing.T) {
	remote := memory.NewRecipeRemote()
	remote.Fail(memory.OpCreate, &domain.APIError{Op: "create recipe", StatusCode: 500})
	service := NewCatalogService(remote, nil)

	_, err := service.Add(context.Background(), arepas())

	assert.Equal(t, 500, domain.StatusCode(err))
	assert.Zero(t, service.Len())
}

func TestCatalogService_Replace(t *testing.T) {
	remote := memory.NewRecipeRemote(seeded()...)
	service := NewCatalogService(remote, nil)
	ctx := context.Background()
	require.NoError(t, service.Load(ctx))

	r, err := service.Get(1)
	require.NoError(t, err)
	r.Servings = 6

	updated, err := service.Replace(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)

	got, _ := service.Get(1)
	assert.Equal(t, 6, got.Servings)
	assert.Equal(t, 2, service.Len())
}

func TestCatalogService_Replace_MissingIdentifier(t *testing.T) {
	remote := memory.NewRecipeRemote(seeded()...)
	service := NewCatalogService(remote, nil)
	ctx := context.Background()
	require.NoError(t, service.Load(ctx))
	before := service.Recipes()

	_, err := service.Replace(ctx, arepas().WithID(0))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingIdentifier)
	assert.Zero(t, remote.Calls(memory.OpUpdate))
	assert.Equal(t, before, service.Recipes())
}

func TestCatalogService_Replace_FailureKeepsList(t *testing.T) {
	remote := memory.NewRecipeRemote(seeded()...)
	service := NewCatalogService(remote, nil)
	ctx := context.Background()
	require.NoError(t, service.Load(ctx))
	remote.Fail(memory.OpUpdate, &domain.APIError{Op: "update recipe", StatusCode: 500})

	r, _ := service.Get(1)
	r.Name = "Arepas rellenas"
	_, err := service.Replace(ctx, r)

	require.Error(t, err)
	got, _ := service.Get(1)
	assert.Equal(t, "Arepas", got.Name)
}

// A recipe that is not in the local list is updated remotely but not added.
func TestCatalogService_Replace_NoLocalMatch(t *testing.T) {
	remote := memory.NewRecipeRemote(seeded()...)
	service := NewCatalogService(remote, nil)
	ctx := context.Background()

	r := seeded()[0]
	r.Name = "Arepas dulces"
	_, err := service.Replace(ctx, r)

	require.NoError(t, err)
	assert.Zero(t, service.Len())
}

func TestCatalogService_Remove(t *testing.T) {
	remote := memory.NewRecipeRemote(seeded()...)
	comments := memory.NewCommentStore()
	service := NewCatalogService(remote, comments)
	ctx := context.Background()
	require.NoError(t, service.Load(ctx))
	_, _ = comments.Create(ctx, domain.Comment{RecipeID: 1, Rating: 5})

	require.NoError(t, service.Remove(ctx, 1))

	assert.Equal(t, 1, service.Len())
	_, err := service.Get(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	left, _ := comments.ListByRecipe(ctx, 1)
	assert.Empty(t, left)
}

// A failed delete leaves the list exactly as it was.
func TestCatalogService_Remove_Failure(t *testing.T) {
	remote := memory.NewRecipeRemote(seeded()...)
	service := NewCatalogService(remote, nil)
	ctx := context.Background()
	require.NoError(t, service.Load(ctx))
	before := service.Recipes()
	remote.Fail(memory.OpDelete, &domain.APIError{Op: "delete recipe", StatusCode: 500, Message: "db down"})

	err := service.Remove(ctx, 2)

	require.Error(t, err)
	assert.True(t, domain.IsAPIError(err))
	assert.Equal(t, before, service.Recipes())
}

func TestCatalogService_Remove_InvalidID(t *testing.T) {
	service := NewCatalogService(memory.NewRecipeRemote(), nil)
	assert.ErrorIs(t, service.Remove(context.Background(), 0), domain.ErrInvalidInput)
}

func TestCatalogService_NilRemote(t *testing.T) {
	service := NewCatalogService(nil, nil)
	assert.ErrorIs(t, service.Load(context.Background()), domain.ErrNotImplemented)
}

func TestCatalogService_RecipesReturnsCopy(t *testing.T) {
	service := NewCatalogService(memory.NewRecipeRemote(seeded()...), nil)
	require.NoError(t, service.Load(context.Background()))

	recipes := service.Recipes()
	recipes[0].Name = "changed"
	recipes[0].Ingredients[0].Name = "changed"

	got, _ := service.Get(1)
	assert.Equal(t, "Arepas", got.Name)
	assert.Equal(t, "maíz", got.Ingredients[0].Name)
}

func TestCatalogService_ConcurrentMutations(t *testing.T) {
	service := NewCatalogService(memory.NewRecipeRemote(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = service.Add(ctx, arepas())
			_ = service.Filter(domain.RecipeFilter{Category: "Desayunos"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, service.Len())
	seen := make(map[int64]bool)
	for _, r := range service.Recipes() {
		assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
	}
}
