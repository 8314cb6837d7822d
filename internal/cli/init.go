// Package cli holds the bootstrap helpers shared by cmd/grana and
// cmd/grana-worker so both binaries start up the same way.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"grana/internal/config"
	applog "grana/internal/log"
)

// SetupLogger builds the process logger and installs it as the slog default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.Config{})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env for local development. Absence is fine in
// production, so errors are ignored.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and exits the process when it is
// invalid. A binary with broken config has nothing useful left to do.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration invalid", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
