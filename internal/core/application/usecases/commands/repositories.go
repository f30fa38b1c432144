// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ConsignmentRepoFactory provides access to the consignment repository
	// within a transaction.
	ConsignmentRepoFactory interface {
		ConsignmentRepository() ports.ConsignmentRepository
	}

	// ConsignmentUoW manages transactions for consignment operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.ConsignmentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ConsignmentUoW interface {
		TxManager
		ConsignmentRepoFactory
	}

	// ConsignmentUoWFactory creates new consignment unit of work instances.
	ConsignmentUoWFactory interface {
		Create() ConsignmentUoW
	}
)
