// Command seekwell is a hosted-search CLI with file and web grounding.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/seekwell-labs/seekwell-cli/internal/adapters/driven/config/file"
	"github.com/seekwell-labs/seekwell-cli/internal/adapters/driven/openai"
	"github.com/seekwell-labs/seekwell-cli/internal/adapters/driven/storage/memory"
	"github.com/seekwell-labs/seekwell-cli/internal/adapters/driven/storage/sqlite"
	"github.com/seekwell-labs/seekwell-cli/internal/adapters/driving/cli"
	"github.com/seekwell-labs/seekwell-cli/internal/core/ports/driven"
	"github.com/seekwell-labs/seekwell-cli/internal/core/services"
	"github.com/seekwell-labs/seekwell-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory is a convenience for development;
	// its absence is not an error.
	_ = godotenv.Load()

	// Ctrl-C cancels the command context so long-running commands like
	// serve shut down gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	searchService := services.NewSearchService(buildProvider(settingsService), settingsService)

	historyStore := buildHistoryStore()
	defer historyStore.Close() //nolint:errcheck
	searchService.SetHistoryStore(historyStore)

	cli.SetVersion(version)
	cli.SetSearchService(searchService)
	cli.SetHistoryService(services.NewHistoryService(historyStore))
	cli.SetSettingsService(settingsService)

	return cli.Execute(ctx)
}

// buildProvider constructs the hosted search provider. A missing API key
// leaves the provider nil; commands that need it report the auth error,
// while settings and history keep working.
func buildProvider(settings *services.SettingsService) driven.SearchProvider {
	cfg := openai.Config{APIKey: os.Getenv("OPENAI_API_KEY")}
	if appSettings, err := settings.Get(); err == nil {
		cfg.Model = appSettings.Provider.Model
		cfg.BaseURL = appSettings.Provider.BaseURL
	}

	provider, err := openai.NewSearchProvider(cfg)
	if err != nil {
		logger.Debug("search provider unavailable: %v", err)
		return nil
	}
	return provider
}

// buildHistoryStore opens the on-disk history store, falling back to an
// in-memory one so a broken data directory never blocks searching.
func buildHistoryStore() driven.HistoryStore {
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("history store unavailable, history will not persist: %v", err)
		return memory.NewHistoryStore()
	}
	return store
}
