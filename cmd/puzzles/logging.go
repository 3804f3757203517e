package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// logFile is the open --log-file, if any.
var logFile *os.File

// setupLogging installs the default logger.
func setupLogging(level, path string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "puzzles",
		Level:           lvl,
	})

	if path != "" {
		f, err := openLogFile(path)
		if err != nil {
			return err
		}
		logger.SetOutput(f)
	}

	log.SetDefault(logger)
	return nil
}

// logToFileForTUI moves the log off the terminal while bubbletea owns it.
// Does nothing if --log-file was given.
func logToFileForTUI() {
	if logFile != nil {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	f, err := openLogFile(filepath.Join(home, ".puzzles", "puzzles.log"))
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	closeLog()
	logFile = f
	return f, nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
