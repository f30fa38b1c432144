package services

import "math"

// CeilToTenthKg rounds a weight up to the next 0.1 kg. Billing policy: the
// ceiling direction is deliberate, a raw 12.301 kg bills as 12.4 kg.
// Not interchangeable with RoundToPence.
func CeilToTenthKg(kg float64) float64 {
	return math.Ceil(kg*10) / 10
}

// RoundToPence rounds a monetary amount half-up to two decimal places
// (currency minor units). Not interchangeable with CeilToTenthKg.
func RoundToPence(amount float64) float64 {
	return math.Round(amount*100) / 100
}
