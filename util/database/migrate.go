package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"libraryservice/migrations"
)

// NewMigrate builds a migrator over the embedded schema for the given driver.
// The caller must Close it.
func NewMigrate(driver, dsn string) (*migrate.Migrate, error) {
	dir, url := migrationTarget(driver, dsn)
	src, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("migrations init: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration. No change is not an error.
func MigrateUp(driver, dsn string) error {
	m, err := NewMigrate(driver, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations up: %w", err)
	}
	return nil
}

func migrationTarget(driver, dsn string) (dir, url string) {
	if driver == DriverSQLite {
		return DriverSQLite, "sqlite3://" + strings.TrimPrefix(dsn, "file:")
	}
	return "postgres", dsn
}
