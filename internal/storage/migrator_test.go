package storage

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"provisionbot/internal/storage/migrations"
)

func TestMigrate_UnknownAction(t *testing.T) {
	err := Migrate(context.Background(), nil, MigrationAction("sideways"), zap.NewNop())
	assert.ErrorIs(t, err, ErrUnknownMigration)
}

func TestMigrations_Embedded(t *testing.T) {
	data, err := fs.ReadFile(migrations.FS, "00001_create_presets.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "'standard'")

	for _, action := range []MigrationAction{MigrateUp, MigrateDown, MigrateStatus} {
		assert.Contains(t, migrationSteps, action)
	}
}
