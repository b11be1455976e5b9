package config

import (
	"fmt"
	"net/url"
	"strings"
)

var printerMethods = map[string]struct{}{
	"named_pipe": {},
	"http":       {},
	"file":       {},
	"excel":      {},
}

// Validate checks configuration consistency. An empty backend URL is not an
// error here; search and probe refuse to run until one is configured.
func (c *Config) Validate() error {
	if base := strings.TrimSpace(c.API.BaseURL); base != "" {
		if _, err := url.Parse(base); err != nil {
			return fmt.Errorf("api.base_url: %w", err)
		}
	}
	if _, ok := printerMethods[c.Printer.Method]; !ok {
		return fmt.Errorf("printer.method: unsupported value %q", c.Printer.Method)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
