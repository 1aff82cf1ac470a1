// Command splgraph converts FDA SPL drug labels into normalized JSON
// records and knowledge-graph fragments.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	configfile "github.com/custodia-labs/splgraph-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/splgraph-cli/internal/adapters/driven/output/jsonfile"
	"github.com/custodia-labs/splgraph-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/splgraph-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driven"
	"github.com/custodia-labs/splgraph-cli/internal/core/services"
	"github.com/custodia-labs/splgraph-cli/internal/loaders/filesystem"
	"github.com/custodia-labs/splgraph-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()

	loader := filesystem.NewLoader()
	writer := jsonfile.NewWriter()

	// Catalog storage is optional; commands that need it report the
	// failure when they run.
	var store driven.LabelStore
	if s, err := sqlite.NewStore(cfg.DataDir); err != nil {
		logger.Warn("catalog store unavailable: %v", err)
	} else {
		store = s
		defer s.Close()
	}

	parser := services.NewParserService(loader)
	batch := services.NewBatchService(parser, loader, writer, store)
	watcher := services.NewWatchService(parser, writer, store)

	cli.Configure(cli.Dependencies{
		Parser:  parser,
		Batch:   batch,
		Watcher: watcher,
		Labels:  store,
		Writer:  writer,
		Config:  cfg,
	})

	if err := cli.ExecuteContext(ctx, version); err != nil {
		os.Exit(1)
	}
}

func loadConfig() domain.Config {
	store, err := configfile.NewConfigStore("")
	if err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		return domain.DefaultConfig()
	}
	cfg, err := store.Load()
	if err != nil {
		logger.Warn("config unreadable, using defaults: %v", err)
		return domain.DefaultConfig()
	}
	return *cfg
}
