package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateConsignmentCommandIsNotConstructed = errors.New(
		"CreateConsignmentCommand must be created via NewCreateConsignmentCommand constructor",
	)
)

// CreateConsignmentCommand represents a request to book a new shipment.
// The price is not part of the command; the handler computes it from the
// current pricing configuration so a stale client quote can never be booked.
//
// Example:
//
//	cmd, err := NewCreateConsignmentCommand(
//	    kernel.NewUUID(), "uid-123", packages,
//	    services.AccountPersonal, services.InsuranceBasic, 0,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid booking data: %w", err)
//	}
//
//	ref, err := handler.Handle(ctx, cmd)
type CreateConsignmentCommand struct { //nolint:recvcheck //using for validation
	consignmentID kernel.UUID
	customerID    string
	packages      []kernel.PackageDimensions
	accountType   services.AccountType
	insurance     services.InsuranceTier

	// parcelCount lets business customers price a multi-parcel booking that
	// ships as fewer physical packages. Zero means len(packages).
	parcelCount int

	guard guard.ConstructorGuard
}

// NewCreateConsignmentCommand creates a booking command. Validates the
// identifier, customer, package geometry, account type and insurance tier.
func NewCreateConsignmentCommand(
	consignmentID kernel.UUID,
	customerID string,
	packages []kernel.PackageDimensions,
	accountType services.AccountType,
	insurance services.InsuranceTier,
	parcelCount int,
) (CreateConsignmentCommand, error) {
	cmd := CreateConsignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsignmentID(consignmentID),
		cmd.setCustomerID(customerID),
		cmd.setPackages(packages),
		cmd.setAccountType(accountType),
		cmd.setInsurance(insurance),
		cmd.setParcelCount(parcelCount),
	); err != nil {
		return CreateConsignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateConsignmentCommandIsNotConstructed if validation fails.
func (c CreateConsignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateConsignmentCommandIsNotConstructed)
}

// ConsignmentID returns the unique identifier for the new consignment.
func (c CreateConsignmentCommand) ConsignmentID() kernel.UUID {
	return c.consignmentID
}

// CustomerID returns the booking customer's identity-provider uid.
func (c CreateConsignmentCommand) CustomerID() string {
	return c.customerID
}

// Packages returns the parcels to book.
func (c CreateConsignmentCommand) Packages() []kernel.PackageDimensions {
	return c.packages
}

// AccountType returns the customer's account type for discount selection.
func (c CreateConsignmentCommand) AccountType() services.AccountType {
	return c.accountType
}

// Insurance returns the selected insurance tier.
func (c CreateConsignmentCommand) Insurance() services.InsuranceTier {
	return c.insurance
}

// ParcelCount returns the declared parcel count, zero meaning len(packages).
func (c CreateConsignmentCommand) ParcelCount() int {
	return c.parcelCount
}

func (c *CreateConsignmentCommand) setConsignmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.consignmentID = id
	return nil
}

func (c *CreateConsignmentCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerID")
	}

	c.customerID = customerID
	return nil
}

func (c *CreateConsignmentCommand) setPackages(packages []kernel.PackageDimensions) error {
	if len(packages) == 0 {
		return errs.NewValueIsRequiredError("packages")
	}
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	c.packages = packages
	return nil
}

func (c *CreateConsignmentCommand) setAccountType(accountType services.AccountType) error {
	if err := accountType.Validate(); err != nil {
		return err
	}

	c.accountType = accountType
	return nil
}

func (c *CreateConsignmentCommand) setInsurance(insurance services.InsuranceTier) error {
	if err := insurance.Validate(); err != nil {
		return err
	}

	c.insurance = insurance
	return nil
}

func (c *CreateConsignmentCommand) setParcelCount(parcelCount int) error {
	if parcelCount < 0 {
		return errs.NewValueIsInvalidError("parcelCount")
	}

	c.parcelCount = parcelCount
	return nil
}
