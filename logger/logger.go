// Package logger builds the logrus logger used by the CLI and the study.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config selects level, format and destination.
type Config struct {
	Level  string `json:"level" yaml:"level" env:"LEVEL, overwrite"`
	Format string `json:"format" yaml:"format" env:"FORMAT, overwrite"` // "text" or "json"
	Output string `json:"output" yaml:"output" env:"OUTPUT, overwrite"` // "stdout", "stderr" or a file path
}

// New creates a logger from cfg. Empty fields fall back to info, text and
// stderr.
func New(cfg Config) (*logrus.Logger, error) {
	logger := logrus.New()

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", level, err)
	}
	logger.SetLevel(lvl)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		})
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	out, err := getOutput(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to set output: %w", err)
	}
	logger.SetOutput(out)

	return logger, nil
}

// Close closes the logger's output when it is a file opened by New and
// points the logger back at stderr. Standard streams are left open.
func Close(logger *logrus.Logger) error {
	f, ok := logger.Out.(*os.File)
	if !ok || f == os.Stdout || f == os.Stderr {
		return nil
	}
	logger.SetOutput(os.Stderr)
	return f.Close()
}

func getOutput(output string) (io.Writer, error) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}

	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
