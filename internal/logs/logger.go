package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const logPrefix = "[jotter] "

var (
	Logger  *log.Logger
	logFile *os.File
	mu      sync.Mutex
)

// Until Initialize is called, log output is discarded so that importing the
// package never creates files in the working directory.
func init() {
	Logger = log.New(io.Discard, logPrefix, log.LstdFlags|log.Lshortfile)
}

// Initialize points the logger at debug.log inside logDir.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" || logDir == "." {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger = log.New(f, logPrefix, log.LstdFlags|log.Lshortfile)

	Logger.Printf("Logger initialized at: %s", logPath)

	return nil
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		Logger = log.New(io.Discard, logPrefix, log.LstdFlags|log.Lshortfile)
		return err
	}
	return nil
}
