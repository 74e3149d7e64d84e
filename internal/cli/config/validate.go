package config

import (
	"fmt"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.SiteSettings.Validate(); err != nil {
		return err
	}

	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("output must be one of auto, text, markdown, json; got %q", c.OutputFormat)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}

	if ui := c.UI; ui != nil && (ui.Port < 0 || ui.Port > 65535) {
		return fmt.Errorf("ui.port out of range: %d", ui.Port)
	}
	return nil
}
