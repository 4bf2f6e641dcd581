// Package pgtest starts a disposable PostgreSQL for integration suites.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"deliverytracker/internal/adapters/out/postgres"
	"deliverytracker/internal/core/domain/model/address"
	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/domain/model/user"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Database is a migrated PostgreSQL running in a container.
type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

// Start runs postgres:15-alpine, connects with postgres.Open and migrates the schema.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db, DSN: dsn}, nil
}

// Truncate empties every table and resets identity sequences.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE order_events, orders, addresses, users RESTART IDENTITY CASCADE").Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// Fixed is the reference instant used by seeded rows.
var Fixed = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// NewUser builds a transient user for seeding.
func NewUser(email string, role user.Role) (*user.User, error) {
	u, err := user.NewUser(email, "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", "Test User", Fixed)
	if err != nil {
		return nil, err
	}
	if role != user.RoleUser {
		if err := u.ChangeRole(role); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// NewAddress builds a transient address in the given city.
func NewAddress(postalCode, city, region string) (*address.Address, error) {
	pc, err := kernel.NewPostalCode(postalCode)
	if err != nil {
		return nil, err
	}
	coords, err := kernel.NewCoordinates(-23.56, -46.65)
	if err != nil {
		return nil, err
	}
	return address.NewAddress(pc, address.Fields{
		Street: "Avenida Paulista",
		Number: "1000",
		City:   city,
		Region: region,
	}, &coords)
}
