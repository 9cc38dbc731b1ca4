// Package inventory holds the in-memory device collection for one process run
// and enforces its invariants: unique, never-reused DEV-NNNN identifiers,
// statuses drawn from the fixed enumeration, and insertion order.
package inventory

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/internal/metrics"
	"github.com/HerbHall/netinventory/pkg/models"
)

var idPattern = regexp.MustCompile(`^DEV-(\d+)$`)

// NewDevice carries the caller-supplied fields for Add. Type and status are
// matched case-insensitively.
type NewDevice struct {
	Name       string
	DeviceType string
	IP         string
	Location   string
	Owner      string
	Status     string
	Notes      string
}

// Patch carries an update. Blank fields leave the record unchanged.
type Patch struct {
	Owner    string
	Location string
	Status   string
	Notes    string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics records operations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// Store owns the device collection. It is not safe for concurrent use; a
// single control loop drives it.
type Store struct {
	devices []*models.Device
	dirty   bool
	now     func() time.Time
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates a Store seeded with devices (typically the result of a load).
// The slice is copied.
func New(devices []models.Device, opts ...Option) *Store {
	s := &Store{
		devices: make([]*models.Device, 0, len(devices)),
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := range devices {
		d := devices[i]
		s.devices = append(s.devices, &d)
	}
	s.metrics.SetDevices(len(s.devices))
	return s
}

// GenerateID returns the next identifier for devices: the largest numeric
// suffix among well-formed DEV-<digits> IDs plus one, zero-padded to four
// digits. Malformed IDs are ignored. An empty collection yields DEV-0001.
// Suffixes are unbounded, so no loaded ID can make the sequence wrap.
func GenerateID(devices []models.Device) string {
	highest := new(big.Int)
	for i := range devices {
		if n, ok := idNumber(devices[i].DeviceID); ok && n.Cmp(highest) > 0 {
			highest = n
		}
	}
	next := new(big.Int).Add(highest, big.NewInt(1))
	return fmt.Sprintf("%s%04d", models.IDPrefix, next)
}

func idNumber(id string) (*big.Int, bool) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return nil, false
	}
	return new(big.Int).SetString(m[1], 10)
}

// NextID returns the identifier the next Add will assign.
func (s *Store) NextID() string {
	return GenerateID(s.Snapshot())
}

// Add validates fields, assigns a fresh ID and creation timestamp, and
// appends the record. On a *ValidationError the collection is unchanged.
func (s *Store) Add(fields NewDevice) (*models.Device, error) {
	d, err := s.build(fields)
	if err != nil {
		s.rejected(err)
		return nil, err
	}

	s.devices = append(s.devices, d)
	s.dirty = true
	s.metrics.Operation("add")
	s.metrics.SetDevices(len(s.devices))
	s.logger.Info("device added",
		zap.String("device_id", d.DeviceID),
		zap.String("device_type", string(d.DeviceType)),
		zap.String("ip", d.IP),
	)
	return d, nil
}

func (s *Store) build(f NewDevice) (*models.Device, error) {
	if err := validateRequired("name", f.Name); err != nil {
		return nil, err
	}
	dt, err := parseType(f.DeviceType)
	if err != nil {
		return nil, err
	}
	ip, err := parseIP(f.IP)
	if err != nil {
		return nil, err
	}
	if err := validateRequired("location", f.Location); err != nil {
		return nil, err
	}
	if err := validateRequired("owner", f.Owner); err != nil {
		return nil, err
	}
	st, err := parseStatus(f.Status)
	if err != nil {
		return nil, err
	}

	return &models.Device{
		DeviceID:   s.NextID(),
		Name:       strings.TrimSpace(f.Name),
		DeviceType: dt,
		IP:         ip,
		Location:   strings.TrimSpace(f.Location),
		Owner:      strings.TrimSpace(f.Owner),
		Status:     st,
		Notes:      strings.TrimSpace(f.Notes),
		CreatedAt:  s.now().Format(models.CreatedAtLayout),
	}, nil
}

// Find returns every record whose text fields contain query,
// case-insensitively, in collection order. No match is an empty result.
func (s *Store) Find(query string) []*models.Device {
	q := strings.ToLower(strings.TrimSpace(query))
	var matches []*models.Device
	for _, d := range s.devices {
		if strings.Contains(d.Haystack(), q) {
			matches = append(matches, d)
		}
	}
	s.metrics.Operation("find")
	s.logger.Debug("find", zap.String("query", query), zap.Int("matches", len(matches)))
	return matches
}

// Select resolves a 1-based pick from a match list. A blank choice cancels
// and returns ok=false with no error.
func Select(matches []*models.Device, choice string) (*models.Device, bool, error) {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return nil, false, nil
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(matches) {
		return nil, false, &ValidationError{Field: "selection", Value: choice, Err: ErrInvalidSelection}
	}
	return matches[n-1], true, nil
}

// Update applies p to d. Blank owner, location and notes mean no change. An
// unknown status is rejected with a *ValidationError while the remaining
// fields still apply, so the error is informational.
func (s *Store) Update(d *models.Device, p Patch) error {
	if v := strings.TrimSpace(p.Owner); v != "" {
		d.Owner = v
	}
	if v := strings.TrimSpace(p.Location); v != "" {
		d.Location = v
	}
	if v := strings.TrimSpace(p.Notes); v != "" {
		d.Notes = v
	}
	s.dirty = true
	s.metrics.Operation("update")

	var statusErr error
	if strings.TrimSpace(p.Status) != "" {
		st, err := parseStatus(p.Status)
		if err != nil {
			statusErr = err
			s.rejected(err)
		} else {
			d.Status = st
		}
	}

	s.logger.Info("device updated",
		zap.String("device_id", d.DeviceID),
		zap.String("status", string(d.Status)),
		zap.Bool("status_rejected", statusErr != nil),
	)
	return statusErr
}

// Retire marks d as Retired. Retiring a retired device changes nothing.
func (s *Store) Retire(d *models.Device) {
	if d.Status != models.DeviceStatusRetired {
		d.Status = models.DeviceStatusRetired
		s.dirty = true
	}
	s.metrics.Operation("retire")
	s.logger.Info("device retired", zap.String("device_id", d.DeviceID))
}

// List returns the records in insertion order, optionally only Active ones.
func (s *Store) List(activeOnly bool) []*models.Device {
	out := make([]*models.Device, 0, len(s.devices))
	for _, d := range s.devices {
		if activeOnly && d.Status != models.DeviceStatusActive {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.devices) }

// Snapshot returns a copy of the collection for persistence and export.
func (s *Store) Snapshot() []models.Device {
	out := make([]models.Device, len(s.devices))
	for i, d := range s.devices {
		out[i] = *d
	}
	return out
}

// Dirty reports whether the collection changed since it was created or last
// marked clean.
func (s *Store) Dirty() bool { return s.dirty }

// MarkClean records that the current collection has been persisted.
func (s *Store) MarkClean() { s.dirty = false }

func (s *Store) rejected(err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		s.metrics.ValidationFailure(ve.Field)
		s.logger.Warn("validation failed", zap.String("field", ve.Field), zap.Error(ve.Err))
	}
}
