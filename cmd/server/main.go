package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmedbank/ledger/infra/initializer"
	"github.com/ahmedbank/ledger/pkg/config"
	"github.com/ahmedbank/ledger/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app := webapi.NewApp(deps.Ledger, deps.Auth, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server", "address", addr)
	return app.Listen(addr)
}
