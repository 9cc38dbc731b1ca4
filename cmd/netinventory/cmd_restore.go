package main

import (
	"context"
	"fmt"

	"github.com/HerbHall/netinventory/internal/backup"
)

func runRestore(args []string, std streams) int {
	fs := newFlagSet("restore", std)
	input := fs.String("input", "", "backup archive to restore (required)")
	dataDir := fs.String("data-dir", ".", "target directory for restored files")
	force := fs.Bool("force", false, "overwrite existing files")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if *input == "" {
		fmt.Fprintln(std.err, "error: -input is required")
		fs.Usage()
		return 2
	}

	restored, err := backup.Restore(context.Background(), *input, *dataDir, *force)
	if err != nil {
		fmt.Fprintf(std.err, "restore failed: %v\n", err)
		return 1
	}
	for _, path := range restored {
		fmt.Fprintf(std.out, "restored %s\n", path)
	}
	fmt.Fprintf(std.out, "Restore complete: files restored to %s\n", *dataDir)
	return 0
}
