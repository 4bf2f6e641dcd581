// Command createadmin makes sure at least one administrator exists.
// The account comes from ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"deliverytracker/cmd"
	"deliverytracker/internal/adapters/out/postgres"
	"deliverytracker/internal/core/application/usecases/commands"

	"github.com/labstack/gommon/log"
)

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if cfg.AdminPassword == "" {
		log.Fatalf("ADMIN_PASSWORD is required")
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx := context.Background()
	gormDB, err := postgres.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	command, err := commands.NewEnsureAdminCommand(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
	if err != nil {
		log.Fatalf("Invalid admin account: %v", err)
	}

	app := cmd.NewCompositionRoot(ctx, &cfg, gormDB, logger)
	admin, outcome, err := app.CreateEnsureAdminCommandHandler().Handle(ctx, command)
	if err != nil {
		log.Fatalf("Error ensuring admin: %v", err)
	}

	switch outcome {
	case commands.AdminAlreadyPresent:
		fmt.Printf("An administrator already exists: %s\n", admin.Email())
	case commands.AdminPromoted:
		fmt.Printf("User %s promoted to administrator\n", admin.Email())
	case commands.AdminCreated:
		fmt.Printf("Administrator %s created\n", admin.Email())
	}
}
