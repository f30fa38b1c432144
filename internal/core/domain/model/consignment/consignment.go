package consignment

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"
)

var (
	// ErrConsignmentIsNotConstructed is returned when a Consignment instance was
	// not created through NewConsignment or RestoreConsignment.
	ErrConsignmentIsNotConstructed = errors.New("Consignment must be created via NewConsignment or RestoreConsignment")

	// ErrTimelineMismatch is returned when restoring a consignment whose stored
	// timeline does not end in the stored current status.
	ErrTimelineMismatch = errors.New("timeline last entry must match current status")
)

// Consignment is the aggregate root for one shipment booking. It carries the
// customer-facing tracking reference, the booked packages, the itemized price
// computed at booking time, and the delivery lifecycle.
//
// Invariants:
//   - Must have a valid identifier and tracking reference
//   - Must contain at least one package
//   - The timeline's last entry always equals the current status
//   - The timeline only ever grows; status updates append exactly one entry
//
// The struct uses private fields; all mutation goes through validated methods.
type Consignment struct {
	id          kernel.UUID
	trackingRef kernel.TrackingRef
	customerID  string

	packages  []kernel.PackageDimensions
	insurance services.InsuranceTier
	price     services.PriceBreakdown

	status   Status
	timeline Timeline

	createdAt time.Time
	updatedAt time.Time

	// version supports optimistic concurrency control in the store layer.
	version int

	isConstructed bool
}

// NewConsignment creates a freshly booked consignment in Created status with a
// single timeline entry stamped at createdAt. The price breakdown is the
// output of the pricing engine for the booked packages and is stored verbatim.
func NewConsignment(
	id kernel.UUID,
	trackingRef kernel.TrackingRef,
	customerID string,
	packages []kernel.PackageDimensions,
	insurance services.InsuranceTier,
	price services.PriceBreakdown,
	createdAt time.Time,
) (*Consignment, error) {
	c := &Consignment{
		status:        Created,
		isConstructed: true,
		version:       1,
	}

	if err := errors.Join(
		c.setID(id),
		c.setTrackingRef(trackingRef),
		c.setCustomerID(customerID),
		c.setPackages(packages),
		c.setInsurance(insurance),
		c.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	c.price = price
	c.updatedAt = createdAt

	first, err := NewTimelineEntry(Created, createdAt)
	if err != nil {
		return nil, err
	}
	c.timeline = NewTimeline(first)

	return c, nil
}

// RestoreConsignment rebuilds a consignment from persistence. It re-validates
// the invariants the database cannot express, most importantly that the
// stored timeline ends in the stored current status.
func RestoreConsignment(
	id kernel.UUID,
	trackingRef kernel.TrackingRef,
	customerID string,
	packages []kernel.PackageDimensions,
	insurance services.InsuranceTier,
	price services.PriceBreakdown,
	status Status,
	timeline Timeline,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*Consignment, error) {
	c := &Consignment{
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setTrackingRef(trackingRef),
		c.setCustomerID(customerID),
		c.setPackages(packages),
		c.setInsurance(insurance),
		c.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if timeline.Len() == 0 {
		return nil, errs.NewValueIsRequiredError("timeline")
	}
	if timeline.Last().Status() != status {
		return nil, fmt.Errorf("%w: timeline ends in %s, status is %s",
			ErrTimelineMismatch, timeline.Last().Status(), status)
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not greater than 0", version))
	}

	c.price = price
	c.status = status
	c.timeline = timeline
	c.updatedAt = updatedAt
	c.version = version

	return c, nil
}

// Validate ensures the Consignment was created through a constructor.
func (c *Consignment) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConsignmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two consignments by identifier.
func (c *Consignment) IsEqual(other *Consignment) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the consignment's unique identifier.
func (c *Consignment) ID() kernel.UUID {
	return c.id
}

// TrackingRef returns the customer-facing tracking reference.
func (c *Consignment) TrackingRef() kernel.TrackingRef {
	return c.trackingRef
}

// CustomerID returns the opaque identity-provider uid of the booking customer.
func (c *Consignment) CustomerID() string {
	return c.customerID
}

// Packages returns a copy of the booked packages.
func (c *Consignment) Packages() []kernel.PackageDimensions {
	out := make([]kernel.PackageDimensions, len(c.packages))
	copy(out, c.packages)
	return out
}

// Insurance returns the insurance tier selected at booking.
func (c *Consignment) Insurance() services.InsuranceTier {
	return c.insurance
}

// Price returns the itemized price breakdown computed at booking time.
func (c *Consignment) Price() services.PriceBreakdown {
	return c.price
}

// Status returns the current lifecycle status.
func (c *Consignment) Status() Status {
	return c.status
}

// Timeline returns the append-only transition log.
func (c *Consignment) Timeline() Timeline {
	return c.timeline
}

// CreatedAt returns the booking timestamp.
func (c *Consignment) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the timestamp of the last accepted mutation.
func (c *Consignment) UpdatedAt() time.Time {
	return c.updatedAt
}

// Version returns the optimistic-concurrency version counter. The store layer
// bumps it on every successful update.
func (c *Consignment) Version() int {
	return c.version
}

// UpdateStatus moves the consignment to next and appends one timeline entry
// stamped at. Membership in the status set is the only transition rule; jumps
// such as CREATED -> DELIVERED are accepted (see the package documentation).
// A value outside the set fails with ErrInvalidStatus and no state changes.
func (c *Consignment) UpdateStatus(next Status, at time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}

	entry, err := NewTimelineEntry(next, at)
	if err != nil {
		return err
	}

	c.timeline.Append(entry)
	c.status = next
	c.updatedAt = at
	return nil
}

func (c *Consignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Consignment) setTrackingRef(ref kernel.TrackingRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	c.trackingRef = ref
	return nil
}

func (c *Consignment) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerID")
	}
	c.customerID = customerID
	return nil
}

func (c *Consignment) setPackages(packages []kernel.PackageDimensions) error {
	if len(packages) == 0 {
		return errs.NewValueIsRequiredError("packages")
	}
	for i, p := range packages {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("package %d: %w", i, err)
		}
	}

	c.packages = make([]kernel.PackageDimensions, len(packages))
	copy(c.packages, packages)
	return nil
}

func (c *Consignment) setInsurance(tier services.InsuranceTier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	c.insurance = tier
	return nil
}

func (c *Consignment) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	c.createdAt = createdAt
	return nil
}
