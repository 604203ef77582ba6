// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"
)

var (
	mu     sync.RWMutex
	logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelInfo).WithWriter(os.Stderr)
)

// ParseLevel maps a config level name to a pterm log level. Unknown names
// fall back to info.
func ParseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelInfo
	}
}

// Setup configures the process logger. Debug and trace levels also enable
// pterm debug printer output.
func Setup(level string) *pterm.Logger {
	return SetupWriter(level, os.Stderr)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(level string, w io.Writer) *pterm.Logger {
	lvl := ParseLevel(level)
	if lvl == pterm.LogLevelDebug || lvl == pterm.LogLevelTrace {
		pterm.EnableDebugMessages()
	} else {
		pterm.DisableDebugMessages()
	}

	l := pterm.DefaultLogger.WithLevel(lvl).WithWriter(w)
	mu.Lock()
	logger = l
	mu.Unlock()
	return l
}

// Logger returns the process logger configured by Setup.
func Logger() *pterm.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
