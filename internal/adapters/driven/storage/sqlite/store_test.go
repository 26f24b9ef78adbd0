package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recetasu/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	store, err := NewStore("/dev/null/cannot/create")
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewStore_Success(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "recetasu.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStore_MigrationsRecorded(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var name string
	err = store.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='comments'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "comments", name)
}

// Reopening an existing database does not re-run applied migrations.
func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	first, err := NewStore(dir)
	require.NoError(t, err)
	_, err = first.CommentStore().Create(context.Background(), domain.Comment{
		RecipeID: 1, Author: "Ana", Content: "Rica", Rating: 5,
	})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	comments, err := second.CommentStore().ListByRecipe(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestStore_Migrate_FailingScriptRollsBack(t *testing.T) {
	store := setupTestStore(t)

	err := store.migrate(fstest.MapFS{
		"002_broken.up.sql": &fstest.MapFile{Data: []byte("CREATE TABLE broken (;")},
	})
	require.Error(t, err)

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestStore_Migrate_SkipsUnversionedFiles(t *testing.T) {
	store := setupTestStore(t)

	err := store.migrate(fstest.MapFS{
		"notes.up.sql":       &fstest.MapFile{Data: []byte("garbage")},
		"002_extra.up.sql":   &fstest.MapFile{Data: []byte("CREATE TABLE extra (id INTEGER);")},
		"002_extra.down.sql": &fstest.MapFile{Data: []byte("DROP TABLE extra;")},
	})
	require.NoError(t, err)

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

// ==================== Comment Store Tests ====================

func TestCommentStore_CreateAndList(t *testing.T) {
	store := setupTestStore(t)
	comments := store.CommentStore()
	ctx := context.Background()
	created := time.Date(2026, 4, 2, 9, 30, 0, 123456789, time.FixedZone("COT", -5*3600))

	c, err := comments.Create(ctx, domain.Comment{
		RecipeID:  4,
		Author:    "Ana",
		Content:   "Muy rica",
		Rating:    5,
		CreatedAt: created,
	})
	require.NoError(t, err)
	assert.Positive(t, c.ID)

	list, err := comments.ListByRecipe(ctx, 4)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
	assert.Equal(t, "Ana", list[0].Author)
	assert.Equal(t, "Muy rica", list[0].Content)
	assert.Equal(t, 5, list[0].Rating)
	assert.True(t, created.Equal(list[0].CreatedAt))
	assert.Equal(t, time.UTC, list[0].CreatedAt.Location())
}

func TestCommentStore_ListByRecipe_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	comments := store.CommentStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, rating := range []int{5, 4, 3} {
		_, err := comments.Create(ctx, domain.Comment{
			RecipeID:  1,
			Author:    "user",
			Content:   "ok",
			Rating:    rating,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	list, err := comments.ListByRecipe(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{3, 4, 5}, []int{list[0].Rating, list[1].Rating, list[2].Rating})
	assert.InDelta(t, 4.0, domain.AverageRating(list), 0.0001)
}

func TestCommentStore_ListByRecipe_Empty(t *testing.T) {
	store := setupTestStore(t)
	list, err := store.CommentStore().ListByRecipe(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCommentStore_RatingConstraint(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.CommentStore().Create(context.Background(), domain.Comment{
		RecipeID: 1, Author: "Ana", Content: "x", Rating: 7,
	})
	assert.Error(t, err)
}

func TestCommentStore_DeleteByRecipe(t *testing.T) {
	store := setupTestStore(t)
	comments := store.CommentStore()
	ctx := context.Background()

	for _, recipeID := range []int64{1, 1, 2} {
		_, err := comments.Create(ctx, domain.Comment{RecipeID: recipeID, Author: "a", Content: "b", Rating: 3})
		require.NoError(t, err)
	}

	require.NoError(t, comments.DeleteByRecipe(ctx, 1))

	gone, _ := comments.ListByRecipe(ctx, 1)
	kept, _ := comments.ListByRecipe(ctx, 2)
	assert.Empty(t, gone)
	assert.Len(t, kept, 1)
}

func TestCommentStore_ConcurrentCreates(t *testing.T) {
	store := setupTestStore(t)
	comments := store.CommentStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := comments.Create(ctx, domain.Comment{RecipeID: 9, Author: "a", Content: "b", Rating: 4})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := comments.ListByRecipe(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, list, 10)
}

func TestCommentStore_CancelledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.CommentStore().ListByRecipe(ctx, 1)
	assert.Error(t, err)
}
