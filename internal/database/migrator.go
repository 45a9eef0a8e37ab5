package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

const versionTable = "schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

// SchemaStatus reports the applied and the embedded schema versions.
type SchemaStatus struct {
	Current int32
	Latest  int32
}

// Pending reports whether migrations remain to be applied.
func (s SchemaStatus) Pending() bool {
	return s.Current < s.Latest
}

// Migrate brings the schema at dsn to the latest embedded version.
func Migrate(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	return MigrateTo(ctx, logger, dsn, -1)
}

// MigrateTo moves the schema to target, up or down. A negative target means
// the latest version. It uses a single connection rather than the pool and
// is only run by the `migrate` command and integration tests.
func MigrateTo(ctx context.Context, logger *zerolog.Logger, dsn string, target int32) error {
	return withMigrator(ctx, dsn, func(m *tern.Migrator) error {
		from, err := m.GetCurrentVersion(ctx)
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}

		latest := int32(len(m.Migrations))
		if target < 0 {
			target = latest
		}
		if target > latest {
			return fmt.Errorf("target version %d is beyond latest %d", target, latest)
		}

		if from == target {
			logger.Info().Int32("version", from).Msg("database schema up to date")
			return nil
		}

		if err := m.MigrateTo(ctx, target); err != nil {
			return fmt.Errorf("migrating schema from %d to %d: %w", from, target, err)
		}

		logger.Info().Int32("from", from).Int32("to", target).Msg("migrated database schema")
		return nil
	})
}

// Status reads the applied schema version without changing anything.
func Status(ctx context.Context, dsn string) (SchemaStatus, error) {
	var status SchemaStatus
	err := withMigrator(ctx, dsn, func(m *tern.Migrator) error {
		current, err := m.GetCurrentVersion(ctx)
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		status = SchemaStatus{Current: current, Latest: int32(len(m.Migrations))}
		return nil
	})
	return status, err
}

func withMigrator(ctx context.Context, dsn string, fn func(*tern.Migrator) error) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("opening embedded migrations: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	return fn(m)
}
