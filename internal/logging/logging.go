// Package logging builds the process-wide zap logger from LogSettings.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/HerbHall/netinventory/internal/config"
)

// New returns a logger for s and a cleanup func that flushes and closes
// its output. Every entry carries a per-process "session" field.
func New(s config.LogSettings) (*zap.Logger, func(), error) {
	w, closer, err := output(s)
	if err != nil {
		return nil, nil, err
	}

	logger, err := newWithWriter(s, w)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		_ = logger.Sync()
		if closer != nil {
			_ = closer.Close()
		}
	}
	return logger, cleanup, nil
}

func newWithWriter(s config.LogSettings, w io.Writer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if s.Level != "" {
		l, err := zapcore.ParseLevel(s.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(s.Format) {
	case "", "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("log format %q: expected json or console", s.Format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core).With(zap.String("session", uuid.NewString())), nil
}

// output resolves the configured destination. The returned closer is nil
// for the standard streams.
func output(s config.LogSettings) (io.Writer, io.Closer, error) {
	switch strings.ToLower(s.Output) {
	case "stderr":
		return os.Stderr, nil, nil
	case "stdout":
		return os.Stdout, nil, nil
	case "discard":
		return io.Discard, nil, nil
	case "", "file":
		if s.File == "" {
			return nil, nil, fmt.Errorf("log output is file but log.file is empty")
		}
		if dir := filepath.Dir(s.File); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		lj := &lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    s.MaxSizeMB,
			MaxBackups: s.MaxBackups,
			MaxAge:     s.MaxAgeDays,
			Compress:   s.Compress,
		}
		return lj, lj, nil
	default:
		return nil, nil, fmt.Errorf("log output %q: expected stderr, stdout, file or discard", s.Output)
	}
}
