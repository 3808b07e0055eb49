package config

import (
	"strings"
	"testing"
)

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Fatalf("default config should validate cleanly, got: %v", errs)
	}
}

func TestValidateClampsMaxConnsPerProcess(t *testing.T) {
	cfg := Default()
	cfg.MaxConnsPerProcess = 0
	cfg.Validate()
	if cfg.MaxConnsPerProcess != Default().MaxConnsPerProcess {
		t.Fatalf("zero max_conns_per_process should be clamped, got %d", cfg.MaxConnsPerProcess)
	}

	cfg.MaxConnsPerProcess = -3
	cfg.Validate()
	if cfg.MaxConnsPerProcess <= 0 {
		t.Fatalf("negative max_conns_per_process should be clamped, got %d", cfg.MaxConnsPerProcess)
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	errs := cfg.Validate()
	if len(errs) == 0 {
		t.Fatal("unknown log level should be reported")
	}
	if !strings.Contains(errs[0].Error(), "log_level") {
		t.Fatalf("expected log_level error, got: %v", errs[0])
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "xml"
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Fatal("unknown log format should be reported")
	}
}

func TestValidateRejectsEmptyDenylistTerm(t *testing.T) {
	cfg := Default()
	cfg.ExtraSuspiciousNames = []string{"miner", "  "}
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Fatal("empty denylist term should be reported")
	}
}
