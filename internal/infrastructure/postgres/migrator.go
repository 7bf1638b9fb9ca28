package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrator applies and rolls back the ledger_balance schema.
type Migrator struct {
	databaseURL string
	path        string // empty uses the migrations compiled into the binary
	logger      zerolog.Logger
}

// NewMigrator creates a Migrator. migrationsPath overrides the embedded
// migrations with a directory on disk.
func NewMigrator(databaseURL, migrationsPath string, logger zerolog.Logger) *Migrator {
	return &Migrator{
		databaseURL: databaseURL,
		path:        migrationsPath,
		logger:      logger,
	}
}

// Up applies all pending migrations.
func (m *Migrator) Up() error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logVersion(mg, "schema already up to date")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.logVersion(mg, "schema migrated")
	return nil
}

// Down rolls back the last applied migration.
func (m *Migrator) Down() error {
	mg, err := m.open()
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	m.logVersion(mg, "schema rolled back")
	return nil
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	var (
		mg  *migrate.Migrate
		err error
	)

	if m.path != "" {
		mg, err = migrate.New("file://"+m.path, m.databaseURL)
	} else {
		src, srcErr := iofs.New(migrationFiles, "migrations")
		if srcErr != nil {
			return nil, fmt.Errorf("failed to read embedded migrations: %w", srcErr)
		}
		mg, err = migrate.NewWithSourceInstance("iofs", src, m.databaseURL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return mg, nil
}

func (m *Migrator) logVersion(mg *migrate.Migrate, msg string) {
	version, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		m.logger.Warn().Err(err).Msg("could not read schema version")
		return
	}

	m.logger.Info().
		Uint("version", version).
		Bool("dirty", dirty).
		Msg(msg)
}
