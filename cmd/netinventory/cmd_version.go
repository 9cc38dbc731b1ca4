package main

import (
	"fmt"

	"github.com/HerbHall/netinventory/internal/version"
)

func runVersion(args []string, std streams) int {
	fs := newFlagSet("version", std)
	format := fs.String("format", "text", "output format: text, json or yaml")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if *format == "text" {
		fmt.Fprintln(std.out, version.Info())
		return 0
	}
	if err := writeStructured(std.out, *format, version.Current()); err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 2
	}
	return 0
}
