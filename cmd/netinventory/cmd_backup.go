package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/netinventory/internal/backup"
)

func runBackup(configPath string, args []string, std streams) int {
	fs := newFlagSet("backup", std)
	output := fs.String("output", "", "output file path (default: netinventory-backup-{timestamp}.tar.gz)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	a, err := newApp(configPath)
	if err != nil {
		fmt.Fprintf(std.err, "error: %v\n", err)
		return 1
	}
	defer a.close()

	if *output == "" {
		*output = fmt.Sprintf("netinventory-backup-%s.tar.gz", time.Now().Format("20060102-150405"))
	}

	ctx := context.Background()
	if err := backup.Backup(ctx, a.dataPath(), a.cfg.File(), *output); err != nil {
		a.logger.Error("backup failed", zap.Error(err))
		fmt.Fprintf(std.err, "backup failed: %v\n", err)
		return 1
	}
	a.logger.Info("backup created", zap.String("path", *output))
	fmt.Fprintf(std.out, "Backup created: %s\n", *output)
	return 0
}
