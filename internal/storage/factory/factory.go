package factory

import (
	"fmt"
	"strconv"

	"match-highlights/internal/common/errors"
	"match-highlights/internal/config"
	"match-highlights/internal/storage"
	"match-highlights/internal/storage/postgres"
	"match-highlights/internal/storage/sqlite"
)

// NewStore creates a store adapter based on configuration.
func NewStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.DatabaseType {
	case "sqlite":
		return sqlite.NewAdapter(&sqlite.Config{
			DatabasePath: cfg.DatabasePath,
		})

	case "postgres", "postgresql":
		port, err := strconv.Atoi(cfg.PostgresPort)
		if err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("invalid PostgreSQL port: %s", cfg.PostgresPort))
		}
		return postgres.NewAdapter(&postgres.Config{
			Host:     cfg.PostgresHost,
			Port:     port,
			Database: cfg.PostgresDB,
			Username: cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			SSLMode:  cfg.PostgresSSLMode,
		})

	default:
		return nil, errors.ConfigError(fmt.Sprintf("unsupported database type: %s", cfg.DatabaseType))
	}
}
