package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"provisionbot/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Hanterar databasmigreringar",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, zapLogger, err := setup()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	pgStorage, err := storage.NewPostgresStorage(ctx, cfg.Database, storage.NoCache{}, zapLogger)
	if err != nil {
		zapLogger.Error("Failed to init PostgreSQL storage", zap.Error(err))
		return err
	}
	defer pgStorage.Close()

	return storage.Migrate(ctx, pgStorage.DB(), storage.MigrationAction(args[0]), zapLogger)
}
