// Command migrate creates the tables and indexes of the delivery tracker.
package main

import (
	"context"
	"log/slog"
	"os"

	"deliverytracker/cmd"
	"deliverytracker/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
)

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	gormDB, err := postgres.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(context.Background(), gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	logger.Info("Schema is up to date", "database", cfg.DBName)
}
