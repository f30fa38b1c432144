// Package guard provides the constructor-guard pattern used by value objects,
// commands, and queries throughout the booking service. Embedding a
// ConstructorGuard in a struct makes zero-value instances detectable, so that
// objects which bypassed their constructor fail validation instead of
// carrying unvalidated state into the domain.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated
// constructor. The zero value is "not constructed" and fails Validate.
//
// Example:
//
//	type TrackingRef struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTrackingRef(v string) (TrackingRef, error) {
//	    // ...validate v...
//	    return TrackingRef{value: v, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (r TrackingRef) Validate() error {
//	    return r.guard.Validate(ErrTrackingRefIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed. Call it only from the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the enclosing object was built through its
// constructor. For zero-value objects it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
