package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/internal/config"
	"github.com/HerbHall/netinventory/internal/inventory"
	"github.com/HerbHall/netinventory/internal/logging"
	"github.com/HerbHall/netinventory/internal/metrics"
	"github.com/HerbHall/netinventory/internal/persist"
	"github.com/HerbHall/netinventory/internal/version"
)

// app holds the per-process collaborators shared by commands.
type app struct {
	cfg      *config.Config
	settings config.Settings
	logger   *zap.Logger
	metrics  *metrics.Metrics
	cleanup  func()
}

type appOption func(*config.Config, *config.Settings)

// withoutDefaultLogFile discards logs unless log.output was configured, so
// commands that touch no data do not create a log file on every run.
func withoutDefaultLogFile(cfg *config.Config, s *config.Settings) {
	if !cfg.Explicit("log.output") {
		s.Log.Output = "discard"
	}
}

func newApp(configPath string, opts ...appOption) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(cfg, &settings)
	}

	logger, cleanup, err := logging.New(settings.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	logger.Info("netinventory starting",
		zap.String("version", version.Short()),
		zap.String("config", cfg.File()),
		zap.String("backend", settings.Storage.Backend),
	)

	return &app{
		cfg:      cfg,
		settings: settings,
		logger:   logger,
		metrics:  metrics.New(),
		cleanup:  cleanup,
	}, nil
}

// close writes the metrics textfile, if configured, and flushes the log.
func (a *app) close() {
	if err := a.metrics.WriteTextfile(a.settings.Metrics.Textfile); err != nil {
		a.logger.Warn("metrics textfile not written",
			zap.String("path", a.settings.Metrics.Textfile), zap.Error(err))
	}
	a.cleanup()
}

// dataPath is the file holding the inventory for the configured backend.
func (a *app) dataPath() string {
	if a.settings.Storage.Backend == persist.BackendSQLite {
		return a.settings.Storage.SQLitePath
	}
	return a.settings.Data.File
}

func (a *app) openBackend() (persist.Backend, error) {
	return persist.Open(persist.Options{
		Backend:    a.settings.Storage.Backend,
		DataFile:   a.settings.Data.File,
		SQLitePath: a.settings.Storage.SQLitePath,
		Logger:     a.logger,
	})
}

// loadStore loads the collection into a new store. A *persist.PersistenceError
// is returned alongside a usable empty store; any other error is fatal.
func (a *app) loadStore(ctx context.Context, backend persist.Backend) (*inventory.Store, error) {
	devices, err := backend.Load(ctx)
	if err != nil && !errors.Is(err, persist.ErrPersistence) {
		return nil, err
	}
	store := inventory.New(devices,
		inventory.WithLogger(a.logger),
		inventory.WithMetrics(a.metrics),
	)
	return store, err
}
