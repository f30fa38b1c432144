// Package consignment provides the Consignment aggregate root and its
// lifecycle machinery for the booking system.
//
// The package includes:
//   - Consignment: the aggregate root tying a tracking reference, the booked
//     packages, the priced breakdown, and the delivery lifecycle together
//   - Status: the fixed, ordered set of lifecycle states
//   - Timeline: the append-only log of status transitions
//
// Key business rules:
//   - A consignment starts in CREATED with exactly one timeline entry
//   - Every accepted status update appends exactly one timeline entry and
//     overwrites the current status; entries are never removed or reordered
//   - The timeline's last entry always equals the current status
//   - Any member of the status set is accepted as the next status; the
//     machine deliberately does not enforce adjacency, so admin corrections
//     such as CREATED -> DELIVERED are allowed
//   - A value outside the status set is rejected with ErrInvalidStatus and
//     leaves the consignment untouched
package consignment
