package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/internal/export"
)

func runExport(configPath string, args []string, std streams) int {
	fs := newFlagSet("export", std)
	formatFlag := fs.String("format", "", "export format: csv or yaml (default from config)")
	output := fs.String("output", "", "output file path (default from config)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	a, err := newApp(configPath)
	if err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 1
	}
	defer a.close()

	if *formatFlag == "" {
		*formatFlag = a.settings.Export.Format
	}
	if *output == "" {
		*output = a.settings.Export.File
	}
	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 2
	}

	backend, err := a.openBackend()
	if err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 1
	}
	defer backend.Close()

	store, loadErr := a.loadStore(context.Background(), backend)
	if store == nil {
		fmt.Fprintf(std.err, "error: %v\n", loadErr)
		return 1
	}
	if loadErr != nil {
		fmt.Fprintf(std.err, "warning: %v\n", loadErr)
	}

	n, err := export.ToFile(*output, format, store.Snapshot())
	if err != nil {
		a.logger.Error("export failed", zap.String("path", *output), zap.Error(err))
		fmt.Fprintf(std.err, "export failed: %v\n", err)
		return 1
	}
	if n == 0 {
		fmt.Fprintln(std.out, "Nothing to export (inventory is empty).")
		return 0
	}
	a.metrics.Operation("export")
	a.logger.Info("inventory exported", zap.String("path", *output), zap.Int("devices", n))
	fmt.Fprintf(std.out, "Exported %d device(s) to %s\n", n, *output)
	return 0
}
