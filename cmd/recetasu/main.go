// Command recetasu is a terminal recipe catalog backed by a remote recipe service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/recetasu/internal/adapters/driven/config/file"
	"github.com/custodia-labs/recetasu/internal/adapters/driven/recipeapi"
	"github.com/custodia-labs/recetasu/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recetasu/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/recetasu/internal/adapters/driving/cli"
	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driven"
	"github.com/custodia-labs/recetasu/internal/core/ports/driving"
	"github.com/custodia-labs/recetasu/internal/core/services"
	"github.com/custodia-labs/recetasu/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := file.LoadDotEnv(); err != nil {
		logger.Warn("reading .env: %v", err)
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return err
	}

	comments, closeComments := openCommentStore(settings.Comments.Backend)
	defer closeComments()

	var catalog driving.CatalogService
	client, err := recipeapi.NewClient(recipeapi.Config{
		BaseURL:           settings.API.BaseURL,
		Timeout:           time.Duration(settings.API.TimeoutSeconds) * time.Second,
		RequestsPerSecond: settings.API.RequestsPerSecond,
		Version:           version,
	})
	if err != nil {
		// Leave the catalog unset so settings can still repair the URL.
		logger.Error("%v; fix it with 'recetasu settings set api.base_url <url>'", err)
	} else {
		catalog = services.NewCatalogService(client, comments)
	}

	cli.SetServices(cli.Services{
		Catalog:  catalog,
		Comments: services.NewCommentService(comments),
		Settings: settingsService,
	})
	cli.SetConfigWatcher(configStore)
	cli.SetVersion(version)

	return cli.Execute(ctx)
}

// openCommentStore returns the configured comment store and its closer.
// A database that cannot be opened falls back to memory.
func openCommentStore(backend domain.CommentBackend) (driven.CommentStore, func()) {
	if backend != domain.CommentBackendSQLite {
		return memory.NewCommentStore(), func() {}
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Error("opening comment database, keeping comments in memory: %v", err)
		return memory.NewCommentStore(), func() {}
	}
	return store.CommentStore(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing comment database: %v", err)
		}
	}
}
