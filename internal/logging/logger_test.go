// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]pterm.LogLevel{
		"debug":   pterm.LogLevelDebug,
		"DEBUG":   pterm.LogLevelDebug,
		" warn ":  pterm.LogLevelWarn,
		"warning": pterm.LogLevelWarn,
		"error":   pterm.LogLevelError,
		"off":     pterm.LogLevelDisabled,
		"":        pterm.LogLevelInfo,
		"chatty":  pterm.LogLevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := SetupWriter("warn", &buf)
	t.Cleanup(func() { SetupWriter("info", &bytes.Buffer{}) })

	if Logger() != l {
		t.Fatal("Logger() did not return the configured logger")
	}

	l.Info("connected")
	if buf.Len() != 0 {
		t.Errorf("info message written at warn level: %q", buf.String())
	}

	l.Warn("cannot access classification breakdown")
	if !strings.Contains(buf.String(), "classification breakdown") {
		t.Errorf("warn message missing from output: %q", buf.String())
	}
}
