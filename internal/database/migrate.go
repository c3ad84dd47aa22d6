package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // migrate pgx driver
	_ "github.com/golang-migrate/migrate/v4/source/file"     // migrate file source
)

// RunMigrations applies every pending migration from the given directory.
// An already up-to-date schema is not an error.
func RunMigrations(dsn, migrationsDir string) error {
	// The migrate pgx driver registers itself under its own scheme.
	dsn = strings.Replace(dsn, "postgres://", "pgx5://", 1)

	m, err := migrate.New("file://"+migrationsDir, dsn)
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	return nil
}
