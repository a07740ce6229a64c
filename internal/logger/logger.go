// Package logger writes leveled messages to a file so that nothing is
// ever printed to the terminal the TUI owns.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	instance *Logger
	once     sync.Once
)

// Logger appends leveled lines to a log file.
type Logger struct {
	fileLogger *log.Logger
	logFile    *os.File
	mu         sync.Mutex
}

// Init sets up the global logger. Safe to call more than once; only the
// first call opens the file.
func Init() error {
	var err error
	once.Do(func() {
		instance, err = newLogger()
	})
	return err
}

func newLogger() (*Logger, error) {
	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	logPath := filepath.Join(logsDir, "promptpad.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		fileLogger: log.New(logFile, "", log.LstdFlags|log.Lshortfile),
		logFile:    logFile,
	}, nil
}

// Info records an informational message. A no-op before Init.
func Info(format string, args ...interface{}) {
	if instance != nil {
		instance.log("INFO", format, args...)
	}
}

// Error records an error message. A no-op before Init.
func Error(format string, args ...interface{}) {
	if instance != nil {
		instance.log("ERROR", format, args...)
	}
}

// Debug records a debug message. A no-op before Init.
func Debug(format string, args ...interface{}) {
	if instance != nil {
		instance.log("DEBUG", format, args...)
	}
}

func (l *Logger) log(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(format, args...)
	l.fileLogger.Printf("[%s] %s", level, message)
}

// Close flushes and closes the underlying log file.
func Close() error {
	if instance != nil && instance.logFile != nil {
		return instance.logFile.Close()
	}
	return nil
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	if instance != nil {
		instance.mu.Lock()
		defer instance.mu.Unlock()
		instance.fileLogger.SetOutput(w)
	}
}
