package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// DefaultMigrationsPath is where the CLI looks for migrations when MIGRATIONS_PATH is unset.
const DefaultMigrationsPath = "file://migrations"

// Migrate brings the ledger schema up to date.
func Migrate(cfg Config, sourceURL string, logger *slog.Logger) error {
	db, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		return fmt.Errorf("opening migration connection: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("initializing migrations: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No database migrations to apply.")
			return nil
		}
		return fmt.Errorf("applying migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully.")
	return nil
}
