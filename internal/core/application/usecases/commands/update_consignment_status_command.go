package commands

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/consignment"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrUpdateConsignmentStatusCommandIsNotConstructed = errors.New(
		"UpdateConsignmentStatusCommand must be created via NewUpdateConsignmentStatusCommand constructor",
	)
)

// UpdateConsignmentStatusCommand represents an operator's request to record a
// lifecycle event for a consignment. occurredAt is the event time reported by
// the operator, not the server receive time.
type UpdateConsignmentStatusCommand struct { //nolint:recvcheck //using for validation
	consignmentID kernel.UUID
	status        consignment.Status
	occurredAt    time.Time

	guard guard.ConstructorGuard
}

// NewUpdateConsignmentStatusCommand creates a status update command.
// The status must be a member of the lifecycle set; any member is accepted
// regardless of the consignment's current status.
func NewUpdateConsignmentStatusCommand(
	consignmentID kernel.UUID,
	status consignment.Status,
	occurredAt time.Time,
) (UpdateConsignmentStatusCommand, error) {
	cmd := UpdateConsignmentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsignmentID(consignmentID),
		cmd.setStatus(status),
		cmd.setOccurredAt(occurredAt),
	); err != nil {
		return UpdateConsignmentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateConsignmentStatusCommandIsNotConstructed if validation fails.
func (c UpdateConsignmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateConsignmentStatusCommandIsNotConstructed)
}

// ConsignmentID returns the identifier of the consignment to update.
func (c UpdateConsignmentStatusCommand) ConsignmentID() kernel.UUID {
	return c.consignmentID
}

// Status returns the new lifecycle status.
func (c UpdateConsignmentStatusCommand) Status() consignment.Status {
	return c.status
}

// OccurredAt returns the reported event time.
func (c UpdateConsignmentStatusCommand) OccurredAt() time.Time {
	return c.occurredAt
}

func (c *UpdateConsignmentStatusCommand) setConsignmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.consignmentID = id
	return nil
}

func (c *UpdateConsignmentStatusCommand) setStatus(status consignment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *UpdateConsignmentStatusCommand) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}

	c.occurredAt = occurredAt
	return nil
}
