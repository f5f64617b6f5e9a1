// The docgen command builds repository context indexes and validates
// generated README sections against the evidence found in the tree.
//
// All wiring happens here: commands receive their services through a
// factory so the core stays free of adapter imports.
package main

import (
	"os"
	"path/filepath"

	"github.com/Saechaoc/docgen/internal/adapters/driven/config/file"
	"github.com/Saechaoc/docgen/internal/adapters/driven/embedding/local"
	"github.com/Saechaoc/docgen/internal/adapters/driven/repo/filesystem"
	"github.com/Saechaoc/docgen/internal/adapters/driven/storage/jsonfile"
	"github.com/Saechaoc/docgen/internal/adapters/driven/storage/sqlite"
	"github.com/Saechaoc/docgen/internal/adapters/driving/cli"
	"github.com/Saechaoc/docgen/internal/analyzers"
	"github.com/Saechaoc/docgen/internal/core/services"
	"github.com/Saechaoc/docgen/internal/logger"
)

// version and commit are overridden at build time:
//
//	go build -ldflags "-X main.version=v1.2.3 -X main.commit=$(git rev-parse --short HEAD)"
var (
	version = "dev"
	commit  string
)

func main() {
	cli.SetVersion(version)
	cli.SetCommit(commit)
	cli.SetServiceFactory(newServices)

	if err := cli.Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}

// newServices assembles the service bundle for one repository root.
// Configuration lives next to the repository, so every invocation reads
// the root's .docgen.toml (or the --config override) before wiring.
func newServices(root string, overrides cli.ServiceOverrides) (*cli.Services, error) {
	configPath := overrides.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(root, file.DefaultConfigName)
	}

	configStore, err := file.NewConfigStore(configPath)
	if err != nil {
		return nil, err
	}

	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Settings()

	repo := filesystem.New(
		filesystem.WithExcludes(settings.Scan.ExcludePaths),
	)

	embedder := local.New(
		local.WithChunkSize(settings.Chunking.Size),
		local.WithOverlap(settings.Chunking.Overlap),
	)

	storePath := overrides.StorePath
	if storePath == "" {
		storePath = settings.Index.StorePath
	}

	indexer := services.NewContextIndexer(repo, embedder, jsonfile.Open,
		services.WithMaxSourceFiles(settings.Index.MaxSourceFiles),
		services.WithStorePath(storePath),
	)

	registry := analyzers.NewRegistry()
	analyzers.RegisterDefaults(registry)

	var collectorOpts []services.SignalCollectorOption
	if !settings.Cache.Disabled {
		cachePath := filepath.Join(root, filepath.FromSlash(settings.Cache.Path))
		cache, err := sqlite.NewCache(cachePath)
		if err != nil {
			// A broken cache only costs speed; analyzers run directly.
			logger.Warn("Signal cache unavailable: %v", err)
		} else {
			collectorOpts = append(collectorOpts, services.WithSignalCache(cache))
		}
	}

	collector := services.NewSignalCollector(repo, registry, collectorOpts...)

	return &cli.Services{
		Contexts:  indexer,
		Validator: services.NewHallucinationValidator(),
		Signals:   collector,
		Settings:  settingsService,
	}, nil
}
