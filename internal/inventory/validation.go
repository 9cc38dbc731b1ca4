package inventory

import (
	"net/netip"
	"strings"

	"github.com/HerbHall/netinventory/pkg/models"
)

// ValidateIP reports whether s is a syntactically valid IPv4 dotted quad or
// IPv6 address. Reachability is not checked.
func ValidateIP(s string) bool {
	_, err := netip.ParseAddr(strings.TrimSpace(s))
	return err == nil
}

func validateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Value: value, Err: ErrRequired}
	}
	return nil
}

func parseType(value string) (models.DeviceType, error) {
	dt, ok := models.ParseDeviceType(value)
	if !ok {
		return "", &ValidationError{Field: "device_type", Value: value, Err: ErrInvalidType}
	}
	return dt, nil
}

func parseStatus(value string) (models.DeviceStatus, error) {
	st, ok := models.ParseDeviceStatus(value)
	if !ok {
		return "", &ValidationError{Field: "status", Value: value, Err: ErrInvalidStatus}
	}
	return st, nil
}

func parseIP(value string) (string, error) {
	value = strings.TrimSpace(value)
	if !ValidateIP(value) {
		return "", &ValidationError{Field: "ip", Value: value, Err: ErrInvalidIP}
	}
	return value, nil
}
