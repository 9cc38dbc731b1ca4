package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/netinventory/pkg/models"
)

// YAML writes devices as a sequence of mappings keyed like the CSV header.
func YAML(w io.Writer, devices []models.Device) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if devices == nil {
		devices = []models.Device{}
	}
	if err := enc.Encode(devices); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
