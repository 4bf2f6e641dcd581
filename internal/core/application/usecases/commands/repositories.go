// Package commands contains the write operations of the delivery tracker.
// Every handler owns exactly one transaction: it begins a unit of work, does
// its writes through the repositories bound to it and commits. Anything that
// needs the network happens before the transaction opens.
package commands

import (
	"context"

	"deliverytracker/internal/core/application/addressing"
	"deliverytracker/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AddressRepoFactory provides the address repository within a transaction.
	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	// UserRepoFactory provides the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderUoW covers writes to orders, their events and their addresses.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   _ = uow.AddressRepository().Add(ctx, origin)
	//   _ = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AddressRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UserUoW covers writes to users.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// RouteResolver runs the fetch stage of order creation.
	RouteResolver interface {
		ResolveRoute(ctx context.Context, origin, destination addressing.Request) (addressing.ResolvedRoute, error)
	}
)
