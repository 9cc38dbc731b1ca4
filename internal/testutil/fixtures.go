package testutil

import "github.com/HerbHall/netinventory/pkg/models"

// NewDevice returns a Device with sensible defaults, suitable for test fixtures.
// Override individual fields with the With* options.
func NewDevice(opts ...func(*models.Device)) models.Device {
	d := models.Device{
		DeviceID:   "DEV-0001",
		Name:       "test-device",
		DeviceType: models.DeviceTypeDesktop,
		IP:         "192.168.1.100",
		Location:   "HQ",
		Owner:      "netops",
		Status:     models.DeviceStatusActive,
		CreatedAt:  "2025-01-01T00:00:00",
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithID sets the device ID.
func WithID(id string) func(*models.Device) {
	return func(d *models.Device) { d.DeviceID = id }
}

// WithName sets the device name.
func WithName(name string) func(*models.Device) {
	return func(d *models.Device) { d.Name = name }
}

// WithIP sets the device's IP address.
func WithIP(ip string) func(*models.Device) {
	return func(d *models.Device) { d.IP = ip }
}

// WithLocation sets the device location.
func WithLocation(loc string) func(*models.Device) {
	return func(d *models.Device) { d.Location = loc }
}

// WithOwner sets the device owner.
func WithOwner(owner string) func(*models.Device) {
	return func(d *models.Device) { d.Owner = owner }
}

// WithStatus sets the device status.
func WithStatus(s models.DeviceStatus) func(*models.Device) {
	return func(d *models.Device) { d.Status = s }
}

// WithNotes sets the free-form notes.
func WithNotes(notes string) func(*models.Device) {
	return func(d *models.Device) { d.Notes = notes }
}

// WithDeviceType sets the device type.
func WithDeviceType(dt models.DeviceType) func(*models.Device) {
	return func(d *models.Device) { d.DeviceType = dt }
}

// Devices returns n fixtures with sequential IDs DEV-0001..DEV-000n.
func Devices(n int) []models.Device {
	out := make([]models.Device, n)
	for i := range out {
		out[i] = NewDevice(WithID(models.FormatID(i + 1)))
	}
	return out
}
