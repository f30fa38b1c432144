package services_test

import (
	"testing"

	"shipping/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestCeilToTenthKg(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already_a_tenth", 12.4, 12.4},
		{"rounds_up_not_nearest", 12.31, 12.4},
		{"rounds_up_from_raw_total", 12.34, 12.4},
		{"tiny_overflow_rounds_up", 5.01, 5.1},
		{"whole_number_unchanged", 5.0, 5.0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, services.CeilToTenthKg(tt.in), 1e-9)
		})
	}
}

func TestRoundToPence(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"half_rounds_up", 1.125, 1.13},
		{"rounds_down_below_half", 1.004, 1.0},
		{"two_decimals_unchanged", 16.00, 16.00},
		{"long_fraction", 3.14159, 3.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, services.RoundToPence(tt.in), 1e-9)
		})
	}
}
