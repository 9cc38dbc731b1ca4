// Package shell is the numbered-menu front end over the inventory store and
// the subnet planner. Every retry loop lives here; the cores only validate.
package shell

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/internal/export"
	"github.com/HerbHall/netinventory/internal/inventory"
	"github.com/HerbHall/netinventory/internal/metrics"
	"github.com/HerbHall/netinventory/internal/persist"
)

const menuText = `1) List all devices
2) List ACTIVE devices only
3) Add a device
4) Search / Update / Retire a device
5) Subnet planner
6) Inventory report
7) Export inventory
8) Save & Exit
9) Exit without saving`

// Outcome reports how a session ended.
type Outcome int

const (
	// Discarded means the session ended without saving, including on EOF.
	Discarded Outcome = iota
	// Saved means the collection was written to the backend.
	Saved
)

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// WithMetrics records subnet plans and exports.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Shell) { s.metrics = m }
}

// WithExport sets the export destination used by menu option 7.
func WithExport(path string, format export.Format) Option {
	return func(s *Shell) {
		s.exportPath = path
		s.exportFormat = format
	}
}

// WithLoadWarning surfaces a load problem when the session starts.
func WithLoadWarning(err error) Option {
	return func(s *Shell) { s.loadWarning = err }
}

// Shell runs one interactive session.
type Shell struct {
	in      io.Reader
	lines   <-chan inputLine
	view    *view
	store   *inventory.Store
	backend persist.Backend

	exportPath   string
	exportFormat export.Format
	loadWarning  error

	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New returns a shell reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, store *inventory.Store, backend persist.Backend, opts ...Option) *Shell {
	s := &Shell{
		in:           in,
		view:         newView(out),
		store:        store,
		backend:      backend,
		exportPath:   "inventory_export.csv",
		exportFormat: export.FormatCSV,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run drives the menu until the user saves, quits, or input ends. End of
// input is treated as exit without saving. Cancelling ctx abandons any
// pending prompt and returns ctx.Err() without saving.
func (s *Shell) Run(ctx context.Context) (Outcome, error) {
	done := make(chan struct{})
	defer close(done)
	s.lines = readLines(s.in, done)

	if s.loadWarning != nil {
		s.view.println()
		s.view.failure("[ERROR] " + s.loadWarning.Error())
		s.view.println("Starting with an empty inventory.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return s.endOfInput(err)
		}

		s.view.println()
		s.view.println(s.view.title.Render("Network Inventory & Subnet Planner"))
		s.view.println(s.view.dim.Render(strings.Repeat("-", 34)))
		s.view.println(menuText)
		s.view.println()

		choice, err := s.prompt(ctx, "Choose an option (1-9)")
		if err != nil {
			return s.endOfInput(err)
		}

		switch choice {
		case "1":
			s.view.devices(s.store.List(false), s.store.Len())
		case "2":
			s.view.devices(s.store.List(true), s.store.Len())
		case "3":
			err = s.addDevice(ctx)
		case "4":
			err = s.updateOrRetire(ctx)
		case "5":
			err = s.planSubnet(ctx)
		case "6":
			s.view.report(s.store.Report())
		case "7":
			s.exportDevices()
		case "8":
			if s.save(ctx) {
				s.view.println()
				s.view.success("Saved. Goodbye!")
				s.view.println()
				return Saved, nil
			}
		case "9":
			s.goodbyeUnsaved()
			return Discarded, nil
		default:
			s.view.println()
			s.view.warning("Invalid choice. Please select 1-9.")
		}

		if err != nil {
			return s.endOfInput(err)
		}
	}
}

func (s *Shell) endOfInput(err error) (Outcome, error) {
	switch {
	case errors.Is(err, io.EOF):
		s.view.println()
		s.goodbyeUnsaved()
		return Discarded, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.view.println()
		s.goodbyeUnsaved()
	}
	return Discarded, err
}

func (s *Shell) goodbyeUnsaved() {
	s.logger.Info("session ended without saving", zap.Bool("dirty", s.store.Dirty()))
	s.view.println()
	s.view.println("Goodbye (changes not saved).")
	s.view.println()
}

func (s *Shell) save(ctx context.Context) bool {
	if err := s.backend.Save(ctx, s.store.Snapshot()); err != nil {
		s.logger.Error("save failed", zap.String("path", s.backend.Path()), zap.Error(err))
		s.view.println()
		s.view.failure("Save failed: " + err.Error())
		return false
	}
	s.store.MarkClean()
	s.metrics.Operation("save")
	return true
}
