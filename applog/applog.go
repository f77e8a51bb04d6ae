// Package applog is the process-wide leveled logger shared by the video,
// session and ui packages. Errors and warnings are always written; info and
// debug lines only when debug mode is on.
package applog

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu        sync.Mutex
	logger    = log.New(os.Stderr, "[framegrab] ", log.LstdFlags)
	debugMode = os.Getenv("FRAMEGRAB_DEBUG") == "1"
)

func init() {
	if debugMode {
		logger.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// SetOutput redirects all log lines. The TUI points this at a file so the
// alternate screen is not scribbled over.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugMode = enabled
	if enabled {
		logger.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		logger.SetFlags(log.LstdFlags)
	}
}

// DebugMode reports whether debug logging is on.
func DebugMode() bool {
	mu.Lock()
	defer mu.Unlock()
	return debugMode
}

func LogError(format string, args ...interface{}) {
	logger.Printf("ERROR: "+format, args...)
}

func LogWarn(format string, args ...interface{}) {
	logger.Printf("WARN: "+format, args...)
}

func LogInfo(format string, args ...interface{}) {
	if DebugMode() {
		logger.Printf("INFO: "+format, args...)
	}
}

func LogDebug(format string, args ...interface{}) {
	if DebugMode() {
		logger.Printf("DEBUG: "+format, args...)
	}
}
