// Package export writes the device collection to flat files for use outside
// the tool.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/HerbHall/netinventory/pkg/models"
)

// Format names an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for a format other than csv or yaml.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "csv", "yaml" or "yml" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write encodes devices to w in the given format.
func Write(w io.Writer, format Format, devices []models.Device) error {
	switch format {
	case FormatCSV:
		return CSV(w, devices)
	case FormatYAML:
		return YAML(w, devices)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ToFile writes devices to path and returns the number of records written.
// An empty collection writes nothing and returns 0 with a nil error.
func ToFile(path string, format Format, devices []models.Device) (int, error) {
	if format != FormatCSV && format != FormatYAML {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if len(devices) == 0 {
		return 0, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, format, devices); err != nil {
		f.Close()
		return 0, fmt.Errorf("write export %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close export %q: %w", path, err)
	}
	return len(devices), nil
}
