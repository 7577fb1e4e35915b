package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"provisionbot/internal/bot"
	"provisionbot/internal/metrics"
	"provisionbot/internal/storage"
	sessionstore "provisionbot/internal/storage/redis"
	"provisionbot/pkg/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startar Telegram-boten",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, zapLogger, err := setup()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx); err != nil {
		zapLogger.Error("Failed to connect to Redis", zap.Error(err))
		return fmt.Errorf("redis: %w", err)
	}

	pgStorage, err := storage.NewPostgresStorage(ctx, cfg.Database, redisClient, zapLogger)
	if err != nil {
		zapLogger.Error("Failed to init PostgreSQL storage", zap.Error(err))
		return err
	}
	defer pgStorage.Close()

	if err := storage.RunMigrations(ctx, pgStorage.DB(), zapLogger); err != nil {
		zapLogger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr, zapLogger); err != nil {
				zapLogger.Error("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	tgBot, err := bot.New(bot.Dependencies{
		Sessions: sessionstore.New(redisClient.Raw(), cfg.Redis.SessionTTL),
		Presets:  pgStorage,
		Limiter:  redisClient,
		Metrics:  m,
		Logger:   zapLogger,
		Config:   cfg,
	})
	if err != nil {
		zapLogger.Error("Failed to create bot", zap.Error(err))
		return err
	}

	if err := tgBot.Start(ctx); err != nil {
		zapLogger.Error("Bot stopped with error", zap.Error(err))
		return err
	}

	zapLogger.Info("Bot shutdown gracefully")
	return nil
}
