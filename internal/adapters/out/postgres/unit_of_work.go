// Package postgres provides the GORM-based Unit of Work and database helpers.
//
// A unit of work wraps one PostgreSQL transaction. Repositories obtained from
// it after Begin share that transaction; before Begin they use the pool.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.AddressRepository().Add(ctx, origin); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance must be used by a single goroutine.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"deliverytracker/internal/adapters/out/postgres/addressrepo"
	"deliverytracker/internal/adapters/out/postgres/orderrepo"
	"deliverytracker/internal/adapters/out/postgres/userrepo"
	"deliverytracker/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// Every successful commit is logged at debug level with the aggregates it wrote.
func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, logger: logger.With("component", "unit_of_work")}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create returning the concrete type.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{db: f.db, logger: f.logger}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []any
	logger            *slog.Logger
}

// Begin starts a transaction. Calling Begin again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	uow.trackedAggregates = nil
	return nil
}

// Commit makes the transaction's writes permanent.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err == nil && len(uow.trackedAggregates) > 0 {
		uow.logger.DebugContext(ctx, "Transaction committed", "aggregates", describeAggregates(uow.trackedAggregates))
	}
	uow.trackedAggregates = nil
	return err
}

// Rollback discards the transaction's writes.
// Returns gorm.ErrInvalidTransaction when no transaction is open, which makes
// a deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = nil
	return err
}

// OrderRepository returns an order repository bound to the open transaction, if any.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// AddressRepository returns an address repository bound to the open transaction, if any.
func (uow *GormUnitOfWork) AddressRepository() ports.AddressRepository {
	return addressrepo.NewGormAddressRepository(uow.conn())
}

// UserRepository returns a user repository bound to the open transaction, if any.
func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

// TrackAggregate records an aggregate written inside the current transaction.
func (uow *GormUnitOfWork) TrackAggregate(aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

type identified interface {
	ID() int64
}

// describeAggregates renders aggregates as "<type>#<id>", e.g. "*order.Order#42".
func describeAggregates(aggregates []any) []string {
	out := make([]string, 0, len(aggregates))
	for _, a := range aggregates {
		if withID, ok := a.(identified); ok {
			out = append(out, fmt.Sprintf("%T#%d", a, withID.ID()))
			continue
		}
		out = append(out, fmt.Sprintf("%T", a))
	}
	return out
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
