package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment under the RAILBANK prefix.
// A missing .env file is not an error; system environment variables still
// apply.
func Load(logger *slog.Logger) (*App, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}
	var cfg App
	if err := envconfig.Process("RAILBANK", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"env", cfg.Env,
		"credentials_file", cfg.Data.CredentialsFile,
		"reservations_file", cfg.Data.ReservationsFile,
		"ledger_snapshot", cfg.Data.LedgerSnapshot,
		"auth_strategy", cfg.Auth.Strategy,
		"jwt_expiry", cfg.Auth.Jwt.Expiry,
		"server_addr", cfg.Server.Addr,
	)
	return &cfg, nil
}
