package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"provisionbot/internal/config"
	"provisionbot/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "provisionbot",
	Short: "Provisionskalkylator för Telegram",
	Long: `provisionbot räknar ut provision för mötesbokare och säljare samt
Musses nettolön per affär, år och månad.

Utan underkommando startas Telegram-boten.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and builds the logger every long-running
// command shares.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, zapLogger, nil
}
