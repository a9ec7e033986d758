// Package config loads the ledger's configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads AppConfig from the environment. A missing .env file is not
// an error; system environment variables always win.
func Load(logger *slog.Logger) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"storage_driver", cfg.Storage.Driver,
		"jwt_expiry", cfg.Jwt.Expiry,
		"server_port", cfg.Server.Port)
	return &cfg, nil
}
