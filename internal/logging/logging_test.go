package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestPreInitLoggerUsesConfiguredHandler(t *testing.T) {
	logger := L("collector")

	var buf bytes.Buffer
	Init("text", "info", &buf)

	logger.Info("snapshot complete", "connections", 42)

	out := buf.String()
	if !strings.Contains(out, "msg=\"snapshot complete\"") {
		t.Fatalf("expected message, got: %s", out)
	}
	if !strings.Contains(out, "component=collector") {
		t.Fatalf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "connections=42") {
		t.Fatalf("expected connections field, got: %s", out)
	}
}

func TestPreInitLoggerRespectsConfiguredLevel(t *testing.T) {
	logger := L("collector")

	var buf bytes.Buffer
	Init("text", "warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info log should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn log should be emitted: %s", out)
	}
}

func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init("json", "info", &buf)
	t.Cleanup(func() { Init("text", "warn", nil) })

	L("report").Info("rendered")

	out := buf.String()
	if !strings.Contains(out, `"component":"report"`) {
		t.Fatalf("expected json component field, got: %s", out)
	}
}

func TestParseLevelDefaultsToWarn(t *testing.T) {
	if parseLevel("bogus") != parseLevel("warn") {
		t.Fatalf("unknown level should default to warn")
	}
}
