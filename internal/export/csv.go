package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/HerbHall/netinventory/pkg/models"
)

// csvHeaders returns the CSV column headers.
func csvHeaders() []string {
	return models.FieldNames()
}

// deviceToCSVRow converts a device to a CSV row (matching csvHeaders order).
func deviceToCSVRow(d models.Device) []string {
	return d.Fields()
}

// csvColumnCount is the number of columns in the CSV format.
const csvColumnCount = 9

// CSV writes a header row followed by one row per device.
func CSV(w io.Writer, devices []models.Device) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, d := range devices {
		if err := cw.Write(deviceToCSVRow(d)); err != nil {
			return fmt.Errorf("write csv row %s: %w", d.DeviceID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVRowToDevice parses a CSV row into a Device. Returns error for invalid data.
func CSVRowToDevice(row []string) (models.Device, error) {
	if len(row) < csvColumnCount {
		return models.Device{}, fmt.Errorf("expected %d columns, got %d", csvColumnCount, len(row))
	}

	// Re-slice to exactly csvColumnCount so gosec can verify bounds statically.
	r := row[:csvColumnCount]

	dt, ok := models.ParseDeviceType(r[2])
	if !ok {
		return models.Device{}, fmt.Errorf("invalid device_type %q", r[2])
	}
	st, ok := models.ParseDeviceStatus(r[6])
	if !ok {
		return models.Device{}, fmt.Errorf("invalid status %q", r[6])
	}

	return models.Device{
		DeviceID:   r[0],
		Name:       r[1],
		DeviceType: dt,
		IP:         r[3],
		Location:   r[4],
		Owner:      r[5],
		Status:     st,
		Notes:      r[7],
		CreatedAt:  r[8],
	}, nil
}
