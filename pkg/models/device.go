package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DeviceType categorizes an inventory record.
type DeviceType string

const (
	DeviceTypeLaptop  DeviceType = "Laptop"
	DeviceTypeDesktop DeviceType = "Desktop"
	DeviceTypeServer  DeviceType = "Server"
	DeviceTypeRouter  DeviceType = "Router"
	DeviceTypeSwitch  DeviceType = "Switch"
	DeviceTypeAP      DeviceType = "AP"
	DeviceTypePrinter DeviceType = "Printer"
	DeviceTypeOther   DeviceType = "Other"
)

// DeviceStatus is the lifecycle state of an inventory record.
type DeviceStatus string

const (
	DeviceStatusActive  DeviceStatus = "Active"
	DeviceStatusSpare   DeviceStatus = "Spare"
	DeviceStatusRepair  DeviceStatus = "Repair"
	DeviceStatusRetired DeviceStatus = "Retired"
)

// CreatedAtLayout is the timestamp format stored in Device.CreatedAt.
const CreatedAtLayout = "2006-01-02T15:04:05"

// IDPrefix starts every generated device ID.
const IDPrefix = "DEV-"

// FormatID renders sequence number n as a device ID, zero-padded to four digits.
func FormatID(n int) string {
	return fmt.Sprintf("%s%04d", IDPrefix, n)
}

// AllDeviceTypes returns every DeviceType in menu order.
func AllDeviceTypes() []DeviceType {
	return []DeviceType{
		DeviceTypeLaptop, DeviceTypeDesktop, DeviceTypeServer, DeviceTypeRouter,
		DeviceTypeSwitch, DeviceTypeAP, DeviceTypePrinter, DeviceTypeOther,
	}
}

// AllDeviceStatuses returns every DeviceStatus in menu order.
func AllDeviceStatuses() []DeviceStatus {
	return []DeviceStatus{
		DeviceStatusActive, DeviceStatusSpare, DeviceStatusRepair, DeviceStatusRetired,
	}
}

// ParseDeviceType matches s case-insensitively against the known types and
// returns the canonical spelling.
func ParseDeviceType(s string) (DeviceType, bool) {
	s = strings.TrimSpace(s)
	for _, dt := range AllDeviceTypes() {
		if strings.EqualFold(string(dt), s) {
			return dt, true
		}
	}
	return "", false
}

// ParseDeviceStatus matches s case-insensitively against the known statuses
// and returns the canonical spelling.
func ParseDeviceStatus(s string) (DeviceStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range AllDeviceStatuses() {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// Valid reports whether dt is one of the known types.
func (dt DeviceType) Valid() bool {
	for _, known := range AllDeviceTypes() {
		if dt == known {
			return true
		}
	}
	return false
}

// Valid reports whether st is one of the known statuses.
func (st DeviceStatus) Valid() bool {
	for _, known := range AllDeviceStatuses() {
		if st == known {
			return true
		}
	}
	return false
}

// Device is one inventory record.
type Device struct {
	DeviceID   string       `json:"device_id" yaml:"device_id"`
	Name       string       `json:"name" yaml:"name"`
	DeviceType DeviceType   `json:"device_type" yaml:"device_type"`
	IP         string       `json:"ip" yaml:"ip"`
	Location   string       `json:"location" yaml:"location"`
	Owner      string       `json:"owner" yaml:"owner"`
	Status     DeviceStatus `json:"status" yaml:"status"`
	Notes      string       `json:"notes" yaml:"notes"`
	CreatedAt  string       `json:"created_at" yaml:"created_at"`
}

// FieldNames returns the serialized field keys in record order. CSV headers
// and YAML mappings follow this order.
func FieldNames() []string {
	return []string{
		"device_id", "name", "device_type", "ip", "location",
		"owner", "status", "notes", "created_at",
	}
}

// Fields returns the record's values in FieldNames order.
func (d Device) Fields() []string {
	return []string{
		d.DeviceID,
		d.Name,
		string(d.DeviceType),
		d.IP,
		d.Location,
		d.Owner,
		string(d.Status),
		d.Notes,
		d.CreatedAt,
	}
}

// Haystack returns the lower-cased text searched by keyword queries.
func (d Device) Haystack() string {
	return strings.ToLower(strings.Join([]string{
		d.DeviceID, d.Name, string(d.DeviceType), d.IP,
		d.Location, d.Owner, string(d.Status), d.Notes,
	}, " "))
}

// deviceDocument mirrors Device with pointer fields so missing keys can be
// told apart from empty strings.
type deviceDocument struct {
	DeviceID   *string `json:"device_id"`
	Name       *string `json:"name"`
	DeviceType *string `json:"device_type"`
	IP         *string `json:"ip"`
	Location   *string `json:"location"`
	Owner      *string `json:"owner"`
	Status     *string `json:"status"`
	Notes      *string `json:"notes"`
	CreatedAt  *string `json:"created_at"`
}

// UnmarshalJSON decodes a record, requiring every field to be present and the
// type and status to be known values. Unknown keys are rejected.
func (d *Device) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc deviceDocument
	if err := dec.Decode(&doc); err != nil {
		return err
	}

	required := []struct {
		key string
		val *string
	}{
		{"device_id", doc.DeviceID}, {"name", doc.Name}, {"device_type", doc.DeviceType},
		{"ip", doc.IP}, {"location", doc.Location}, {"owner", doc.Owner},
		{"status", doc.Status}, {"notes", doc.Notes}, {"created_at", doc.CreatedAt},
	}
	for _, r := range required {
		if r.val == nil {
			return fmt.Errorf("device record missing %q", r.key)
		}
	}

	dt := DeviceType(*doc.DeviceType)
	if !dt.Valid() {
		return fmt.Errorf("device %s: unknown device_type %q", *doc.DeviceID, *doc.DeviceType)
	}
	st := DeviceStatus(*doc.Status)
	if !st.Valid() {
		return fmt.Errorf("device %s: unknown status %q", *doc.DeviceID, *doc.Status)
	}

	*d = Device{
		DeviceID:   *doc.DeviceID,
		Name:       *doc.Name,
		DeviceType: dt,
		IP:         *doc.IP,
		Location:   *doc.Location,
		Owner:      *doc.Owner,
		Status:     st,
		Notes:      *doc.Notes,
		CreatedAt:  *doc.CreatedAt,
	}
	return nil
}
