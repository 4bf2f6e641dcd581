package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"deliverytracker/internal/adapters/out/postgres/addressrepo"
	"deliverytracker/internal/adapters/out/postgres/orderrepo"
	"deliverytracker/internal/adapters/out/postgres/userrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every persisted DTO in foreign-key order.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&addressrepo.AddressDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.EventDTO{},
	}
}

// Migrate creates or updates the schema for all Models.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// DSN builds a PostgreSQL keyword/value connection string from its parts.
// Every value is single-quoted so spaces, quotes and backslashes survive.
func DSN(host, port, user, password, name, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		quoteDSNValue(host), quoteDSNValue(port), quoteDSNValue(user),
		quoteDSNValue(password), quoteDSNValue(name), quoteDSNValue(sslMode))
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// Open connects to PostgreSQL. Driver errors are translated so unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}
