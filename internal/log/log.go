// Package log is the diagnostic logger. It always writes to stderr so that
// reports on stdout are never interleaved with log output.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the level and sinks of the global logger.
type Config struct {
	Level   string // trace, debug, info, warn, error; default warn
	File    string // optional rotating log file
	NoColor bool
}

var (
	mu     sync.RWMutex
	logger = newLogger(Config{})
)

// Init replaces the global logger according to cfg.
func Init(cfg Config) error {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}
	l := newLogger(cfg).Level(level)
	SetLogger(&l)
	return nil
}

func newLogger(cfg Config) zerolog.Logger {
	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: cfg.NoColor, TimeFormat: "15:04:05"}
	if cfg.File != "" {
		w = zerolog.MultiLevelWriter(w, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.WarnLevel)
}

func parseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// GetLogger returns the global logger.
func GetLogger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &logger
}

// SetLogger replaces the global logger.
func SetLogger(l *zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = *l
}

func Debugf(format string, a ...interface{}) {
	GetLogger().Debug().Msgf(format, a...)
}

func Infof(format string, a ...interface{}) {
	GetLogger().Info().Msgf(format, a...)
}

func Warnf(format string, a ...interface{}) {
	GetLogger().Warn().Msgf(format, a...)
}

func Errorf(format string, a ...interface{}) {
	GetLogger().Error().Msgf(format, a...)
}
