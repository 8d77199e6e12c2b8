// Command seed fills empty settings collections with starter data.
//
// It acts as the admin principal from TIPSPLIT_SERVICE_ACCOUNT, or as the
// ambient principal when that is unset.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/tipsplit/internal/config"
	"github.com/mmynk/tipsplit/internal/credentials"
	"github.com/mmynk/tipsplit/internal/session"
	"github.com/mmynk/tipsplit/internal/settings"
	"github.com/mmynk/tipsplit/internal/storage/sqlite"
	"github.com/mmynk/tipsplit/pkg/logging"
)

type seedConfig struct {
	DBPath         string `env:"TIPSPLIT_DB_PATH" envDefault:"./data/tipsplit.db"`
	ServiceAccount string `env:"TIPSPLIT_SERVICE_ACCOUNT"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	var cfg seedConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("seed: %v", err)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	creds, err := credentials.Parse(cfg.ServiceAccount)
	if err != nil {
		config.Exitf("seed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		config.Exitf("seed: %v", err)
	}
	defer store.Close()

	identity := creds.Identity()
	slog.Info("Seeding defaults", "database", cfg.DBPath, "principal", identity.UserID, "source", creds.Source)

	report, err := settings.SeedDefaults(ctx, session.NewStatic(identity), store, slog.Default())
	if err != nil {
		slog.Error("Seeding failed", "error", err)
		store.Close()
		os.Exit(1)
	}
	for collection, n := range report {
		slog.Info("Seeded", "collection", collection, "count", n)
	}
}
