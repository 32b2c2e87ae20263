package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	persistentLogFile *os.File
	loggingMu         sync.Mutex
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogger installs the default structured logger. Output goes to
// stdout and, when cfg.File is set, is appended to that file as well.
func setupLogger(cfg LoggingConfig) *slog.Logger {
	loggingMu.Lock()
	defer loggingMu.Unlock()

	closeLoggerLocked()

	var out io.Writer = os.Stdout
	var fileErr error
	if cfg.File != "" {
		logFile, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			persistentLogFile = logFile
			out = io.MultiWriter(os.Stdout, logFile)
		}
		fileErr = err
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)})
	logger := slog.New(handler).With("app", "coursebot")
	slog.SetDefault(logger)

	if cfg.File != "" {
		if fileErr != nil {
			slog.Error("Persistent logging disabled: failed to open log file", "file", cfg.File, "err", fileErr)
		} else {
			slog.Info("Persistent logging enabled", "file", cfg.File)
		}
	}
	return logger
}

func closeLogger() {
	loggingMu.Lock()
	defer loggingMu.Unlock()
	closeLoggerLocked()
}

func closeLoggerLocked() {
	if persistentLogFile == nil {
		return
	}
	_ = persistentLogFile.Sync()
	_ = persistentLogFile.Close()
	persistentLogFile = nil
}
