package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/internal/shell"
	"github.com/HerbHall/netinventory/internal/subnet"
)

func runPlan(configPath string, args []string, std streams) int {
	fs := newFlagSet("plan", std)
	format := fs.String("format", "text", "output format: text, json or yaml")
	fs.Usage = func() {
		fmt.Fprintln(std.err, "Usage: netinventory plan [-format text|json|yaml] <cidr>")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	a, err := newApp(configPath, withoutDefaultLogFile)
	if err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 1
	}
	defer a.close()

	r, err := subnet.Plan(fs.Arg(0))
	if err != nil {
		a.logger.Info("subnet rejected", zap.String("input", fs.Arg(0)), zap.Error(err))
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 1
	}
	a.metrics.SubnetPlan(string(r.Family()))

	if *format == "text" {
		shell.PrintPlan(std.out, r)
		return 0
	}
	if err := writeStructured(std.out, *format, r); err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 2
	}
	return 0
}
