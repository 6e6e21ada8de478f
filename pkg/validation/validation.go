// Package validation provides common input validation utilities.
package validation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates a missing, non-numeric, or out-of-range field.
var ErrInvalidInput = errors.New("invalid input")

// RequirePositive fails unless value > 0.
func RequirePositive(field string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %.2f", ErrInvalidInput, field, value)
	}
	return nil
}

// RequireNonNegative fails unless value >= 0.
func RequireNonNegative(field string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %.2f", ErrInvalidInput, field, value)
	}
	return nil
}

// RequireIntRange fails unless min <= value <= max.
func RequireIntRange(field string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrInvalidInput, field, min, max, value)
	}
	return nil
}
