package consignment

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus is returned when a status value outside the enumerated set
// reaches the status machine. It is the only domain-specific failure the
// lifecycle raises.
var ErrInvalidStatus = errors.New("invalid consignment status")

// Status represents one state in the consignment delivery lifecycle.
//
// The set is fixed and totally ordered:
//
//	CREATED -> PICKED_UP -> IN_TRANSIT -> CUSTOMS -> OUT_FOR_DELIVERY -> DELIVERED
//
// CREATED is the only initial state. DELIVERED is the conventional terminal
// state, though the machine does not forbid transitions out of it. The string
// names are stable public vocabulary shared with stored records and the
// tracking UI; never rename them.
//
// The machine is deliberately permissive: any member of the set is a legal
// next status from any current status (no adjacency check), which keeps
// manual admin corrections possible. Strictness is a known open product
// question; the permissive rule matches the shipped behavior.
type Status int

const (
	// Unknown is the invalid zero value, used to catch uninitialized statuses.
	Unknown Status = iota

	// Created is assigned when a consignment is booked.
	Created

	// PickedUp means the courier has collected the packages from the sender.
	PickedUp

	// InTransit means the consignment is moving between facilities.
	InTransit

	// Customs means the consignment is held in customs clearance.
	Customs

	// OutForDelivery means the consignment is on the final delivery leg.
	OutForDelivery

	// Delivered means the consignment reached the recipient.
	Delivered
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Created:        "CREATED",
		PickedUp:       "PICKED_UP",
		InTransit:      "IN_TRANSIT",
		Customs:        "CUSTOMS",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
	}
}

// StatusFlow returns the full lifecycle in order, oldest first. Presentation
// layers use it to render tracking progress indicators.
func StatusFlow() []Status {
	return []Status{Created, PickedUp, InTransit, Customs, OutForDelivery, Delivered}
}

// StatusFromString parses a status received from an external source (API
// request, stored record). Unrecognized values are rejected with
// ErrInvalidStatus.
func StatusFromString(s string) (Status, error) {
	for status, name := range statusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q is not in the status set", ErrInvalidStatus, s)
}

// Validate checks membership in the enumerated set. Unknown and any other
// out-of-set value fail with ErrInvalidStatus.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok {
		return fmt.Errorf("%w: %d is not in the status set", ErrInvalidStatus, s)
	}
	return nil
}

// String returns the stable wire name of the status, or "UNKNOWN" for
// out-of-set values. Implements fmt.Stringer.
func (s Status) String() string {
	if name, ok := statusStrings()[s]; ok {
		return name
	}
	return "UNKNOWN"
}
