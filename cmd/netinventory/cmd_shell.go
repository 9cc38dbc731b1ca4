package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/internal/export"
	"github.com/HerbHall/netinventory/internal/shell"
)

func runShell(configPath string, args []string, std streams) int {
	fs := newFlagSet("shell", std)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	a, err := newApp(configPath)
	if err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 1
	}
	defer a.close()

	format, err := export.ParseFormat(a.settings.Export.Format)
	if err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := a.openBackend()
	if err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 1
	}
	defer backend.Close()

	store, loadErr := a.loadStore(ctx, backend)
	if store == nil {
		fmt.Fprintf(std.err, "error: %v\n", loadErr)
		return 1
	}

	sh := shell.New(std.in, std.out, store, backend,
		shell.WithLogger(a.logger),
		shell.WithMetrics(a.metrics),
		shell.WithExport(a.settings.Export.File, format),
		shell.WithLoadWarning(loadErr),
	)
	outcome, err := sh.Run(ctx)
	if errors.Is(err, context.Canceled) {
		a.logger.Info("session interrupted", zap.Bool("dirty", store.Dirty()))
		return 130
	}
	if err != nil {
		a.logger.Error("shell stopped", zap.Error(err))
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 1
	}
	a.logger.Info("session finished", zap.Bool("saved", outcome == shell.Saved))
	return 0
}
