// Package config provides configuration management for the AutoHub CLI.
//
// The shared sections (API, images, site, store) live in internal/config and
// are embedded here alongside CLI-only settings.
package config

import (
	sharedcfg "github.com/leapstack-labs/autohub/internal/config"
)

// SiteSettings is an alias for the shared configuration sections.
type SiteSettings = sharedcfg.SiteSettings

// UIConfig holds configuration for the web server.
type UIConfig struct {
	Port          int    `koanf:"port" yaml:"port"`
	AutoOpen      bool   `koanf:"auto_open" yaml:"auto_open"`
	Watch         bool   `koanf:"watch" yaml:"watch"`
	SessionSecret string `koanf:"session_secret" yaml:"session_secret,omitempty"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:     DefaultPort,
		AutoOpen: false,
		Watch:    false,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	return ui
}

// Config holds all CLI configuration options.
type Config struct {
	SiteSettings `koanf:",squash" yaml:",inline"`

	Environment  string               `koanf:"environment" yaml:"environment,omitempty"`
	Verbose      bool                 `koanf:"verbose" yaml:"-"`
	OutputFormat string               `koanf:"output" yaml:"-"`
	LogLevel     string               `koanf:"log_level" yaml:"log_level,omitempty"`
	LogFormat    string               `koanf:"log_format" yaml:"log_format,omitempty"`
	UI           *UIConfig            `koanf:"ui" yaml:"ui,omitempty"`
	Environments map[string]EnvConfig `koanf:"environments" yaml:"environments,omitempty"`

	// ProjectRoot is the directory holding the config file, or the working directory.
	ProjectRoot string `koanf:"-" yaml:"-"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	APIBaseURL string `koanf:"api_base_url" yaml:"api_base_url,omitempty"`
	StoreDSN   string `koanf:"store_dsn" yaml:"store_dsn,omitempty"`
	SiteName   string `koanf:"site_name" yaml:"site_name,omitempty"`
}

// Default configuration values.
const (
	DefaultPort      = 8765
	DefaultEnv       = "dev"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)
