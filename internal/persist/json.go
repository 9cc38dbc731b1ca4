package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/pkg/models"
)

// Compile-time interface guard.
var _ Backend = (*JSONFile)(nil)

// JSONFile keeps the collection as an indented JSON array in one file.
type JSONFile struct {
	path   string
	logger *zap.Logger
}

// NewJSONFile returns a backend for path.
func NewJSONFile(path string, logger *zap.Logger) *JSONFile {
	return &JSONFile{path: path, logger: logger}
}

func (f *JSONFile) Path() string { return f.path }

func (f *JSONFile) Close() error { return nil }

func (f *JSONFile) Load(_ context.Context) ([]models.Device, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.Info("no inventory file, starting empty", zap.String("path", f.path))
		return []models.Device{}, nil
	}
	if err != nil {
		return []models.Device{}, &PersistenceError{Path: f.path, Err: err}
	}

	var devices []models.Device
	if err := json.Unmarshal(data, &devices); err != nil {
		f.logger.Warn("inventory file unreadable", zap.String("path", f.path), zap.Error(err))
		return []models.Device{}, &PersistenceError{Path: f.path, Err: err}
	}
	if err := checkUnique(devices); err != nil {
		f.logger.Warn("inventory file inconsistent", zap.String("path", f.path), zap.Error(err))
		return []models.Device{}, &PersistenceError{Path: f.path, Err: err}
	}
	if devices == nil {
		devices = []models.Device{}
	}

	f.logger.Info("inventory loaded", zap.String("path", f.path), zap.Int("devices", len(devices)))
	return devices, nil
}

// defaultFileMode applies when the inventory file does not exist yet.
const defaultFileMode fs.FileMode = 0o644

// fileMode keeps the permissions of an existing inventory file across saves.
func (f *JSONFile) fileMode() fs.FileMode {
	info, err := os.Stat(f.path)
	if err != nil {
		return defaultFileMode
	}
	return info.Mode().Perm()
}

// Save writes the collection to a temporary file beside the target and
// renames it into place, so a failed save leaves the previous file intact.
func (f *JSONFile) Save(_ context.Context, devices []models.Device) error {
	if devices == nil {
		devices = []models.Device{}
	}
	data, err := json.MarshalIndent(devices, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save inventory %q: %w", f.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save inventory %q: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save inventory %q: %w", f.path, err)
	}
	if err := os.Chmod(tmpName, f.fileMode()); err != nil {
		return fmt.Errorf("save inventory %q: %w", f.path, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("save inventory %q: %w", f.path, err)
	}

	f.logger.Info("inventory saved", zap.String("path", f.path), zap.Int("devices", len(devices)))
	return nil
}
