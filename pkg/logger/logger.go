// Package logger configures the global zerolog logger used across the service.
package logger

import (
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// ErrServiceNameIsEmpty is returned by Init when Config.ServiceName is blank.
	ErrServiceNameIsEmpty = errors.New("logger: service name can not be empty")
)

// Config controls where and how much the service logs.
type Config struct {
	Level       string // trace, debug, info, warn, error
	ServiceName string

	// Console output (stdout for info/debug, stderr for the rest).
	Console       bool
	ConsolePretty bool

	// Rotating files. Disabled when FilePath is empty.
	FilePath       string
	FileMaxSizeMB  int
	FileMaxBackups int
	FileMaxAgeDays int
}

// LevelWriter splits output by level: errors and warnings go to ErrorWriter,
// everything else to InfoWriter.
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (n int, err error) {
	if l == zerolog.Disabled {
		return 0, nil
	}

	w := lw.InfoWriter
	if l >= zerolog.WarnLevel {
		w = lw.ErrorWriter
	}

	return w.Write(p) //nolint:wrapcheck
}

// Init replaces log.Logger according to cfg.
func Init(cfg Config) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = zerolog.ParseLevel(cfg.Level); err != nil {
			return errors.Wrapf(err, "loglevel %s is not supported", cfg.Level)
		}
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, newConsoleWriter(cfg.ConsolePretty))
	}
	if cfg.FilePath != "" {
		fw, err := newRollingFile(cfg)
		if err != nil {
			return err
		}
		writers = append(writers, fw)
	}

	hook := NewPrometheusHook(cfg.ServiceName)

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(hook).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger()

	return nil
}

func newConsoleWriter(pretty bool) io.Writer {
	lw := &LevelWriter{ErrorWriter: os.Stderr, InfoWriter: os.Stdout}

	if pretty {
		lw.ErrorWriter = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFieldFormat}
		lw.InfoWriter = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: zerolog.TimeFieldFormat}
	}

	return lw
}

func newRollingFile(cfg Config) (io.Writer, error) {
	if err := os.MkdirAll(cfg.FilePath, 0o750); err != nil {
		return nil, errors.Wrapf(err, "can't create log directory %s", cfg.FilePath)
	}

	rolling := func(name string) *lumberjack.Logger {
		return &lumberjack.Logger{
			Filename:   path.Join(cfg.FilePath, name),
			MaxSize:    cfg.FileMaxSizeMB,
			MaxAge:     cfg.FileMaxAgeDays,
			MaxBackups: cfg.FileMaxBackups,
		}
	}

	return &LevelWriter{
		ErrorWriter: rolling("error.log"),
		InfoWriter:  rolling("info.log"),
	}, nil
}
