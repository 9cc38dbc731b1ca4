package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/HerbHall/netinventory/internal/testutil"
	"github.com/HerbHall/netinventory/pkg/models"
)

func TestDeviceToCSVRow_ColumnCount(t *testing.T) {
	d := testutil.NewDevice(testutil.WithNotes("Production server"))

	row := deviceToCSVRow(d)

	if len(row) != len(csvHeaders()) {
		t.Fatalf("expected %d columns, got %d", len(csvHeaders()), len(row))
	}
	if len(row) != csvColumnCount {
		t.Fatalf("csvColumnCount = %d, row has %d", csvColumnCount, len(row))
	}
	if row[0] != "DEV-0001" {
		t.Errorf("device_id: got %q, want %q", row[0], "DEV-0001")
	}
	if row[7] != "Production server" {
		t.Errorf("notes: got %q, want %q", row[7], "Production server")
	}
}

func TestCSVRowToDevice_ValidRow(t *testing.T) {
	row := []string{
		"DEV-0042", "web-01", "Server", "10.0.0.5", "Rack A3",
		"platform-team", "Spare", "Production server", "2026-01-10T08:00:00",
	}

	d, err := CSVRowToDevice(row)
	require.NoError(t, err)

	assert.Equal(t, models.Device{
		DeviceID: "DEV-0042", Name: "web-01", DeviceType: models.DeviceTypeServer,
		IP: "10.0.0.5", Location: "Rack A3", Owner: "platform-team",
		Status: models.DeviceStatusSpare, Notes: "Production server",
		CreatedAt: "2026-01-10T08:00:00",
	}, d)
}

func TestCSVRowToDevice_Invalid(t *testing.T) {
	good := []string{"DEV-0001", "a", "Server", "10.0.0.1", "HQ", "ops", "Active", "", "2026-01-01T00:00:00"}

	tests := []struct {
		name string
		row  []string
	}{
		{"too few columns", good[:5]},
		{"bad type", replaceAt(good, 2, "Toaster")},
		{"bad status", replaceAt(good, 6, "Broken")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CSVRowToDevice(tt.row)
			assert.Error(t, err)
		})
	}
}

func replaceAt(row []string, i int, v string) []string {
	out := append([]string(nil), row...)
	out[i] = v
	return out
}

func TestCSV_HeaderAndRoundTrip(t *testing.T) {
	devices := []models.Device{
		testutil.NewDevice(testutil.WithNotes(`has "quotes", and commas`)),
		testutil.NewDevice(testutil.WithID("DEV-0002"), testutil.WithIP("2001:db8::10"),
			testutil.WithStatus(models.DeviceStatusRetired)),
	}

	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, devices))

	firstLine, _, _ := strings.Cut(buf.String(), "\n")
	assert.Equal(t, "device_id,name,device_type,ip,location,owner,status,notes,created_at", firstLine)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, row := range records[1:] {
		d, err := CSVRowToDevice(row)
		require.NoError(t, err)
		assert.Equal(t, devices[i], d)
	}
}

func TestYAML_FieldOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, []models.Device{testutil.NewDevice()}))

	out := buf.String()
	prev := -1
	for _, key := range models.FieldNames() {
		idx := strings.Index(out, key+":")
		require.GreaterOrEqual(t, idx, 0, "missing key %s in:\n%s", key, out)
		assert.Greater(t, idx, prev, "key %s out of order", key)
		prev = idx
	}

	var decoded []map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "DEV-0001", decoded[0]["device_id"])
	assert.Equal(t, "2025-01-01T00:00:00", decoded[0]["created_at"])
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{" CSV ", FormatCSV, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xlsx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory_export.csv")

	n, err := ToFile(path, FormatCSV, testutil.Devices(3))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(data), "\n"))
}

func TestToFile_EmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory_export.csv")

	n, err := ToFile(path, FormatCSV, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no file should be written")
}

func TestToFile_UnknownFormat(t *testing.T) {
	_, err := ToFile(filepath.Join(t.TempDir(), "out"), Format("xml"), testutil.Devices(1))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestToFile_BadPath(t *testing.T) {
	_, err := ToFile(filepath.Join(t.TempDir(), "missing", "out.csv"), FormatCSV, testutil.Devices(1))
	assert.Error(t, err)
}
