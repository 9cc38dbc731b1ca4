package subnet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCIDR matches every rejected planner input.
	ErrInvalidCIDR = errors.New("subnet: invalid CIDR")

	// ErrPrefixRange is returned when the prefix length does not fit the
	// address family (0-32 for IPv4, 0-128 for IPv6).
	ErrPrefixRange = errors.New("subnet: prefix length out of range")
)

// ValidationError reports why a CIDR string was rejected.
type ValidationError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid CIDR %q: %s", e.Input, e.Reason)
}

// Unwrap exposes the specific cause.
func (e *ValidationError) Unwrap() error { return e.Err }

// Is makes every ValidationError match ErrInvalidCIDR.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidCIDR
}

func invalid(input, reason string, err error) *ValidationError {
	return &ValidationError{Input: input, Reason: reason, Err: err}
}
