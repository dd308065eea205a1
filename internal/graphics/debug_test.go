package graphics

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-gl/gl/v4.5-core/gl"
)

func TestDebugLevel(t *testing.T) {
	tests := []struct {
		severity uint32
		want     slog.Level
		name     string
	}{
		{gl.DEBUG_SEVERITY_HIGH, slog.LevelError, "HIGH"},
		{gl.DEBUG_SEVERITY_MEDIUM, slog.LevelWarn, "MEDIUM"},
		{gl.DEBUG_SEVERITY_LOW, slog.LevelWarn, "LOW"},
		{gl.DEBUG_SEVERITY_NOTIFICATION, slog.LevelInfo, "NOTIFICATION"},
		{0, slog.LevelDebug, "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := DebugLevel(tt.severity); got != tt.want {
			t.Errorf("DebugLevel(%#x) = %v, want %v", tt.severity, got, tt.want)
		}
		if got := DebugSeverityName(tt.severity); got != tt.name {
			t.Errorf("DebugSeverityName(%#x) = %q, want %q", tt.severity, got, tt.name)
		}
	}
}

func TestDebugNames(t *testing.T) {
	if got := DebugSourceName(gl.DEBUG_SOURCE_SHADER_COMPILER); got != "SHADER_COMPILER" {
		t.Errorf("source name = %q", got)
	}
	if got := DebugSourceName(1); got != "UNKNOWN" {
		t.Errorf("unknown source name = %q", got)
	}
	if got := DebugTypeName(gl.DEBUG_TYPE_PERFORMANCE); got != "PERFORMANCE" {
		t.Errorf("type name = %q", got)
	}
	if got := DebugTypeName(1); got != "UNKNOWN" {
		t.Errorf("unknown type name = %q", got)
	}
}

func TestDebugCallbackLogs(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	debugCallback(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_ERROR, 1282, gl.DEBUG_SEVERITY_HIGH, 0, "invalid operation", nil)

	out := buf.String()
	for _, want := range []string{"level=ERROR", "OpenGL: invalid operation", "source=API", "type=ERROR", "id=1282"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q does not contain %q", out, want)
		}
	}
}

func TestLoggerSilentByDefault(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("nil logger should be silent")
	}
}
