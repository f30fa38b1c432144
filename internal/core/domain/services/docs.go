// Package services provides domain services for the booking system.
//
// The package includes the pricing engine: pure functions turning package
// geometry, weight, insurance selection, account type, and a pricing
// configuration into a fully itemized price breakdown. Same inputs always
// produce the same breakdown; there is no hidden state and no I/O, so the
// engine may be called concurrently from any number of goroutines.
//
// Two deliberately separate rounding policies live here: chargeable weight
// rounds UP to 0.1 kg (the payer never benefits from rounding down), while
// monetary amounts round half-up to the penny. Keep them as distinct
// functions; they must never be unified.
package services
