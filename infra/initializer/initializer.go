// Package initializer wires the ledger's runtime dependencies: logger,
// storage backend, hydrated registry and services.
package initializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmedbank/ledger/infra/csvstore"
	"github.com/ahmedbank/ledger/infra/gormstore"
	"github.com/ahmedbank/ledger/pkg/bank"
	"github.com/ahmedbank/ledger/pkg/config"
	"github.com/ahmedbank/ledger/pkg/service/auth"
	"github.com/ahmedbank/ledger/pkg/service/ledger"
	"github.com/ahmedbank/ledger/pkg/storage"
)

// Deps holds everything a shell needs to serve the ledger.
type Deps struct {
	Logger *slog.Logger
	Store  storage.Store
	Bank   *bank.Bank
	Ledger *ledger.Service
	Auth   *auth.Service
}

// InitializeDependencies builds the dependency graph from configuration.
// The registry is hydrated from the configured store before returning, so
// a Deps with no error is ready to serve requests.
func InitializeDependencies(ctx context.Context, cfg *config.AppConfig) (*Deps, error) {
	deps := &Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	store, err := newStore(cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	deps.Store = store

	b, err := bank.New(ctx, store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate bank registry: %w", err)
	}
	deps.Bank = b

	deps.Ledger = ledger.New(b, logger)
	deps.Auth = auth.New(b, cfg.Jwt, logger)

	logger.Info("dependencies initialized",
		"storage_driver", cfg.Storage.Driver,
		"customers", b.Size())
	return deps, nil
}

func newStore(cfg config.Storage, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Driver {
	case "csv", "":
		logger.Info("using CSV storage", "path", cfg.CsvPath)
		return csvstore.New(cfg.CsvPath), nil
	case "postgres":
		logger.Info("using Postgres storage")
		return gormstore.Open(cfg.Url)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
