package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateDimension checks that v is a usable extent (width, height, thickness).
// Zero is accepted; negative, NaN and infinite values are contract violations.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative: %v", name, v)
	}
	return nil
}

// ValidatePositive checks that v is a finite, strictly positive extent.
func ValidatePositive(name string, v float64) error {
	if err := ValidateDimension(name, v); err != nil {
		return err
	}
	if v == 0 {
		return New(ErrCodeInvalidInput, "%s must be positive", name)
	}
	return nil
}

// ValidateCoordinate checks that v is a finite coordinate.
// Coordinates may be negative (drops left of the layout are legal).
func ValidateCoordinate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number, got %v", name, v)
	}
	return nil
}

// ValidateIndex checks that i addresses one of n elements.
func ValidateIndex(name string, i, n int) error {
	if i < 0 || i >= n {
		return New(ErrCodeInvalidInput, "%s %d out of range [0, %d)", name, i, n)
	}
	return nil
}

// ValidateID validates a user supplied identifier (planogram, unit, surface).
// It rejects names that could be used for path traversal or key injection.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "%s id too long (max 128 characters)", kind)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "%s id contains invalid characters", kind)
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "%s id contains invalid characters: %q", kind, pattern)
		}
	}

	return nil
}
