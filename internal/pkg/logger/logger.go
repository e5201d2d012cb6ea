// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logger provides structured logging interfaces for the WAS scan client.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lazycatapps/wasscan/internal/types"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger defines the logging interface with three severity levels.
type Logger interface {
	Info(format string, args ...interface{})  // Informational messages
	Error(format string, args ...interface{}) // Error messages
	Debug(format string, args ...interface{}) // Debug messages
}

// StandardLogger implements the Logger interface on top of logrus.
type StandardLogger struct {
	entry *logrus.Entry
}

// New creates a StandardLogger with the default configuration:
// info level, text format, stderr output.
func New() *StandardLogger {
	l, _ := NewWithConfig(types.LogConfig{Level: "info", Format: "text"})
	return l
}

// NewWithConfig creates a StandardLogger from cfg.
// An unknown level falls back to info; an unknown format is an error.
func NewWithConfig(cfg types.LogConfig) (*StandardLogger, error) {
	base := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		base.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		})
	case "json":
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		return nil, fmt.Errorf("unsupported log format: %s", cfg.Format)
	}

	out, err := outputFor(cfg)
	if err != nil {
		return nil, err
	}
	base.SetOutput(out)

	return &StandardLogger{entry: logrus.NewEntry(base)}, nil
}

// outputFor returns the log sink. File output is rotated by lumberjack.
// The log directory is created up front so a bad path fails at startup.
func outputFor(cfg types.LogConfig) (io.Writer, error) {
	if cfg.FilePath == "" {
		return os.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}, nil
}

// WithField returns a logger that attaches key=value to every entry.
func (l *StandardLogger) WithField(key string, value interface{}) *StandardLogger {
	return &StandardLogger{entry: l.entry.WithField(key, value)}
}

// Info logs an informational message.
func (l *StandardLogger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Error logs an error message.
func (l *StandardLogger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Debug logs a debug message.
func (l *StandardLogger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Nop discards everything. Used when a caller does not supply a logger.
type Nop struct{}

func (Nop) Info(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Debug(string, ...interface{}) {}
