package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"provisionbot/internal/storage/migrations"
)

var ErrUnknownMigration = errors.New("unknown migration action")

type MigrationAction string

const (
	MigrateUp     MigrationAction = "up"
	MigrateDown   MigrationAction = "down"
	MigrateStatus MigrationAction = "status"
)

type migrationStep struct {
	start string
	done  string
	run   func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error
}

var migrationSteps = map[MigrationAction]migrationStep{
	MigrateUp:     {"Running database migrations...", "Database migrations completed successfully", goose.UpContext},
	MigrateDown:   {"Rolling back last migration...", "Migration rollback completed", goose.DownContext},
	MigrateStatus: {"Checking migration status...", "", statusContext},
}

func statusContext(ctx context.Context, db *sql.DB, dir string, _ ...goose.OptionsFunc) error {
	return goose.StatusContext(ctx, db, dir)
}

// Migrate applies action to the embedded presets schema.
func Migrate(ctx context.Context, db *sql.DB, action MigrationAction, logger *zap.Logger) error {
	const operation = "storage.Migrate"

	step, ok := migrationSteps[action]
	if !ok {
		return fmt.Errorf("%s: %w: %q", operation, ErrUnknownMigration, action)
	}

	logger.Info(step.start)

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: failed to set dialect: %w", operation, err)
	}

	if err := step.run(ctx, db, "."); err != nil {
		return fmt.Errorf("%s: migrate %s: %w", operation, action, err)
	}

	if step.done != "" {
		logger.Info(step.done)
	}
	return nil
}

func RunMigrations(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	return Migrate(ctx, db, MigrateUp, logger)
}
