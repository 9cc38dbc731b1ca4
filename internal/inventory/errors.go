package inventory

import (
	"errors"
	"fmt"
)

// Domain errors for the inventory package. A *ValidationError wraps one of
// them so callers can test with errors.Is.
var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("inventory: invalid value")

	// ErrRequired is returned when a mandatory field is blank.
	ErrRequired = errors.New("inventory: value required")

	// ErrInvalidIP is returned when an address is neither IPv4 nor IPv6.
	ErrInvalidIP = errors.New("inventory: invalid IP address")

	// ErrInvalidType is returned for a device type outside the enumeration.
	ErrInvalidType = errors.New("inventory: invalid device type")

	// ErrInvalidStatus is returned for a status outside the enumeration.
	ErrInvalidStatus = errors.New("inventory: invalid status")

	// ErrInvalidSelection is returned when a pick from a match list is out of range.
	ErrInvalidSelection = errors.New("inventory: invalid selection")
)

// ValidationError names the field whose value was rejected. The collection
// is never modified when one is returned from Add.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap exposes the specific cause.
func (e *ValidationError) Unwrap() error { return e.Err }

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
