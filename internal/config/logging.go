package config

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// logger is the process-wide zerolog logger. Global so every package logs
// through one configured sink.
//
//nolint:gochecknoglobals // application-wide structured logging
var logger zerolog.Logger

// logFileHandle tracks the open log file so reconfiguration can close it.
//
//nolint:gochecknoglobals // guards the global logger's file handle
var logFileHandle *os.File

// logMu protects logger and logFileHandle.
//
//nolint:gochecknoglobals // guards the global logger state
var logMu sync.RWMutex

// InitLogger configures the global logger with the given level name and an
// optional log file. Logs always go to stderr in console format; when
// logFile is non-empty they additionally go there as JSON lines. An
// unparseable level falls back to info.
func InitLogger(level, logFile string) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}}

	closeLogFileLocked()
	if logFile != "" {
		f, openErr := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if openErr != nil {
			return openErr
		}
		logFileHandle = f
		writers = append(writers, f)
	}

	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return nil
}

// GetLogger returns the global logger.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

// CloseLogFile closes the log file, if one is open, and resets the logger to
// console-only output so later writes never hit a closed file.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked requires logMu to be held.
func closeLogFileLocked() {
	if logFileHandle == nil {
		return
	}
	_ = logFileHandle.Close()
	logFileHandle = nil
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(logger.GetLevel()).With().Timestamp().Logger()
}

// init gives the package a console logger before any configuration loads.
//
//nolint:gochecknoinits // logger must exist before configuration is read
func init() {
	_ = InitLogger("info", "")
}
