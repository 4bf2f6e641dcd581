// Command dbcheck verifies that the configured PostgreSQL server accepts
// connections and reports its version.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"deliverytracker/cmd"

	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
)

const checkTimeout = 5 * time.Second

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	version, err := checkDatabase(ctx, db)
	if err != nil {
		log.Fatalf("Database check failed: %v", err)
	}
	fmt.Printf("Connected to %s@%s:%s/%s\n%s\n", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName, version)
}

func checkDatabase(ctx context.Context, db *sql.DB) (string, error) {
	if err := db.PingContext(ctx); err != nil {
		return "", fmt.Errorf("ping: %w", err)
	}

	var version string
	if err := db.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", fmt.Errorf("query version: %w", err)
	}
	return version, nil
}
