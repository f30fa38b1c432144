// Package kernel provides the shared value objects of the booking domain.
//
// The package includes:
//   - UUID: validated unique identifiers for aggregates
//   - TrackingRef: the customer-facing consignment tracking reference
//   - PackageDimensions: validated physical geometry and weight of one parcel
//
// All types are immutable value objects created through constructor functions.
// The zero value of each type is invalid and fails Validate, which keeps
// unvalidated external data out of the pricing and status logic.
package kernel
