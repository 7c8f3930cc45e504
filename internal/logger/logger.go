// Package logger builds the zerolog logger shared by the server, the CLI
// commands and the request middleware.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"

	"github.com/sitecms/internal/config"
)

// New creates a logger writing to stdout and, when a file path is
// configured, to a size-rotated log file as well. The returned closer
// releases the file handle and is never nil.
func New(cfg config.LoggerConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("parse log level: %w", err)
	}

	var console io.Writer = os.Stdout
	if cfg.Format != "json" {
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	writers := []io.Writer{console}
	var closer io.Closer = nopCloser{}
	if path := strings.TrimSpace(cfg.FilePath); path != "" {
		rotating := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		writers = append(writers, rotating)
		closer = rotating
	}

	return NewWithWriter(zerolog.MultiLevelWriter(writers...), level), closer, nil
}

// NewWithWriter returns a timestamped logger at the given level.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Str("service", "sitecms").Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
