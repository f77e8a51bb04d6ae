package applog

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels_DebugGated(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetDebugMode(false)
	})

	SetDebugMode(false)
	LogWarn("warn %d", 1)
	LogDebug("debug %d", 2)
	LogInfo("info %d", 3)
	out := buf.String()
	if !strings.Contains(out, "WARN: warn 1") {
		t.Fatalf("output = %q, want warning line", out)
	}
	if strings.Contains(out, "debug 2") || strings.Contains(out, "info 3") {
		t.Fatalf("output = %q, want debug and info suppressed", out)
	}

	buf.Reset()
	SetDebugMode(true)
	LogDebug("debug %d", 4)
	if !strings.Contains(buf.String(), "DEBUG: debug 4") {
		t.Fatalf("output = %q, want debug line", buf.String())
	}
}

func TestLogError_AlwaysWritten(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	LogError("open %s", "clip.mp4")
	if !strings.Contains(buf.String(), "ERROR: open clip.mp4") {
		t.Fatalf("output = %q, want error line", buf.String())
	}
}
