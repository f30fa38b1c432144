package kernel

import (
	"fmt"
	"math/rand/v2"
	"regexp"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// TrackingRefPrefix is the fixed prefix of every tracking reference.
const TrackingRefPrefix = "TRN"

// ErrTrackingRefIsNotConstructed is returned when validating a zero-value
// TrackingRef. Use NewRandomTrackingRef or TrackingRefFromString.
var ErrTrackingRefIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking reference must be created via NewRandomTrackingRef or TrackingRefFromString")

var trackingRefPattern = regexp.MustCompile(`^TRN\d{6}$`)

// TrackingRef is the customer-facing reference of a consignment, in the form
// "TRN" followed by six digits (e.g. "TRN042137"). It is the stable key used
// by the tracking lookup and printed on shipping labels; treat the format as
// public vocabulary.
//
// TrackingRef is an immutable value object. The zero value is invalid.
type TrackingRef struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewRandomTrackingRef mints a new reference with a random six-digit suffix.
// Uniqueness is enforced by the store (unique index), not here; collisions
// surface as insert failures the caller can retry.
func NewRandomTrackingRef() TrackingRef {
	return TrackingRef{
		value: fmt.Sprintf("%s%06d", TrackingRefPrefix, rand.IntN(1_000_000)), //nolint:gosec // not a secret
		guard: guard.NewConstructorGuard(),
	}
}

// TrackingRefFromString parses and validates a reference received from an
// external source (API path parameter, stored record).
func TrackingRefFromString(s string) (TrackingRef, error) {
	if s == "" {
		return TrackingRef{}, errs.NewValueIsRequiredError("trackingRef")
	}
	if !trackingRefPattern.MatchString(s) {
		return TrackingRef{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingRef",
			fmt.Errorf("%q does not match %s", s, trackingRefPattern.String()),
		)
	}

	return TrackingRef{
		value: s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the reference in its canonical form.
func (r TrackingRef) String() string {
	return r.value
}

// IsEqual reports whether two references carry the same value.
func (r TrackingRef) IsEqual(other TrackingRef) bool {
	return r.value == other.value
}

// Validate returns ErrTrackingRefIsNotConstructed for the zero value.
func (r TrackingRef) Validate() error {
	return r.guard.Validate(ErrTrackingRefIsNotConstructed)
}
