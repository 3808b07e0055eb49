package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks the config for invalid values and returns all errors found.
// Zero-values that would break report rendering are clamped to safe defaults;
// everything else is reported so the caller can decide whether to proceed.
func (c *Config) Validate() []error {
	var errs []error

	if c.MaxConnsPerProcess <= 0 {
		c.MaxConnsPerProcess = Default().MaxConnsPerProcess
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q must be text or json", c.LogFormat))
	}

	for _, term := range c.ExtraSuspiciousNames {
		if strings.TrimSpace(term) == "" {
			errs = append(errs, fmt.Errorf("extra_suspicious_names contains an empty term"))
			break
		}
	}

	return errs
}
