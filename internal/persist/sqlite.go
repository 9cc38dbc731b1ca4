package persist

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/internal/store"
	"github.com/HerbHall/netinventory/pkg/models"
)

// Compile-time interface guard.
var _ Backend = (*SQLiteSnapshot)(nil)

func migrations() []store.Migration {
	return []store.Migration{
		{
			Version:     1,
			Description: "create inventory_devices table",
			Up: func(ctx context.Context, tx *sql.Tx) error {
				_, err := tx.ExecContext(ctx, `CREATE TABLE inventory_devices (
					position    INTEGER PRIMARY KEY,
					device_id   TEXT NOT NULL UNIQUE,
					name        TEXT NOT NULL,
					device_type TEXT NOT NULL,
					ip          TEXT NOT NULL,
					location    TEXT NOT NULL,
					owner       TEXT NOT NULL,
					status      TEXT NOT NULL,
					notes       TEXT NOT NULL DEFAULT '',
					created_at  TEXT NOT NULL
				)`)
				return err
			},
		},
	}
}

// deviceColumns is the shared column list for snapshot queries.
const deviceColumns = `device_id, name, device_type, ip, location, owner, status, notes, created_at`

// SQLiteSnapshot stores the collection as rows of one SQLite table. Every
// Save rewrites the table inside a single transaction, so the database holds
// exactly one complete snapshot at all times.
type SQLiteSnapshot struct {
	path   string
	db     *store.SQLiteStore
	owned  bool
	logger *zap.Logger
}

// NewSQLiteSnapshot returns a backend for the database at path. The file is
// opened on first use.
func NewSQLiteSnapshot(path string, logger *zap.Logger) *SQLiteSnapshot {
	return &SQLiteSnapshot{path: path, owned: true, logger: logger}
}

// NewSQLiteSnapshotFromStore returns a backend over an already open store.
// Close leaves the store open.
func NewSQLiteSnapshotFromStore(db *store.SQLiteStore, logger *zap.Logger) *SQLiteSnapshot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLiteSnapshot{db: db, logger: logger}
}

func (s *SQLiteSnapshot) Path() string { return s.path }

func (s *SQLiteSnapshot) Close() error {
	if s.db == nil || !s.owned {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteSnapshot) open(ctx context.Context) error {
	if s.db == nil {
		db, err := store.Open(ctx, s.path)
		if err != nil {
			return err
		}
		s.db = db
	}
	return s.db.Migrate(ctx, migrations())
}

func (s *SQLiteSnapshot) Load(ctx context.Context) ([]models.Device, error) {
	if err := s.open(ctx); err != nil {
		s.logger.Warn("inventory database unreadable", zap.String("path", s.path), zap.Error(err))
		return []models.Device{}, &PersistenceError{Path: s.path, Err: err}
	}

	devices, err := s.readAll(ctx)
	if err == nil {
		err = checkUnique(devices)
	}
	if err != nil {
		s.logger.Warn("inventory database unreadable", zap.String("path", s.path), zap.Error(err))
		return []models.Device{}, &PersistenceError{Path: s.path, Err: err}
	}

	s.logger.Info("inventory loaded", zap.String("path", s.path), zap.Int("devices", len(devices)))
	return devices, nil
}

func (s *SQLiteSnapshot) readAll(ctx context.Context) ([]models.Device, error) {
	rows, err := s.db.DB().QueryContext(ctx,
		`SELECT `+deviceColumns+` FROM inventory_devices ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query devices: %w", err)
	}
	defer rows.Close()

	devices := []models.Device{}
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func scanDevice(rows *sql.Rows) (models.Device, error) {
	var d models.Device
	var dt, status string
	err := rows.Scan(
		&d.DeviceID, &d.Name, &dt, &d.IP, &d.Location,
		&d.Owner, &status, &d.Notes, &d.CreatedAt,
	)
	if err != nil {
		return d, fmt.Errorf("scan device: %w", err)
	}
	d.DeviceType = models.DeviceType(dt)
	d.Status = models.DeviceStatus(status)
	if !d.DeviceType.Valid() {
		return d, fmt.Errorf("device %s: unknown device_type %q", d.DeviceID, dt)
	}
	if !d.Status.Valid() {
		return d, fmt.Errorf("device %s: unknown status %q", d.DeviceID, status)
	}
	return d, nil
}

func (s *SQLiteSnapshot) Save(ctx context.Context, devices []models.Device) error {
	if err := s.open(ctx); err != nil {
		return fmt.Errorf("save inventory %q: %w", s.path, err)
	}

	err := s.db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_devices`); err != nil {
			return fmt.Errorf("clear devices: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO inventory_devices (position, `+deviceColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := range devices {
			d := &devices[i]
			_, err := stmt.ExecContext(ctx, i+1,
				d.DeviceID, d.Name, string(d.DeviceType), d.IP, d.Location,
				d.Owner, string(d.Status), d.Notes, d.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert device %s: %w", d.DeviceID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save inventory %q: %w", s.path, err)
	}

	s.logger.Info("inventory saved", zap.String("path", s.path), zap.Int("devices", len(devices)))
	return nil
}
