package main

import (
	"context"
	"fmt"

	"github.com/HerbHall/netinventory/internal/shell"
)

func runReport(configPath string, args []string, std streams) int {
	fs := newFlagSet("report", std)
	format := fs.String("format", "text", "output format: text, json or yaml")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	a, err := newApp(configPath)
	if err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 1
	}
	defer a.close()

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

	report := store.Report()
	if *format == "text" {
		shell.PrintReport(std.out, report)
		return 0
	}
	if err := writeStructured(std.out, *format, report); err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 2
	}
	return 0
}
