// Package persist loads and saves the whole device collection. Persistence
// is all-or-nothing: Load produces a fresh collection, Save replaces the
// stored one.
package persist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/pkg/models"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Backend stores a complete inventory snapshot.
type Backend interface {
	// Load returns the stored collection. A missing store yields an empty
	// collection and nil error; an unparseable one yields an empty
	// collection and a *PersistenceError.
	Load(ctx context.Context) ([]models.Device, error)

	// Save replaces the stored collection with devices.
	Save(ctx context.Context, devices []models.Device) error

	// Path returns the file backing the store.
	Path() string

	// Close releases any resources held by the backend.
	Close() error
}

// Options selects and configures a Backend.
type Options struct {
	Backend    string
	DataFile   string
	SQLitePath string
	Logger     *zap.Logger
}

// Open returns the backend named by opts.Backend (json when empty).
func Open(opts Options) (Backend, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	switch opts.Backend {
	case "", BackendJSON:
		return NewJSONFile(opts.DataFile, logger), nil
	case BackendSQLite:
		return NewSQLiteSnapshot(opts.SQLitePath, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected %s or %s)", opts.Backend, BackendJSON, BackendSQLite)
	}
}

// checkUnique rejects collections that repeat a device ID.
func checkUnique(devices []models.Device) error {
	seen := make(map[string]struct{}, len(devices))
	for i := range devices {
		id := devices[i].DeviceID
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate device_id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
