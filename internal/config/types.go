// Package config provides the configuration sections shared by the CLI and
// the web UI, plus config file discovery.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// APIConfig points at the remote listings API.
type APIConfig struct {
	BaseURL   string        `koanf:"base_url" yaml:"base_url"`
	Timeout   time.Duration `koanf:"timeout" yaml:"timeout"`
	UserAgent string        `koanf:"user_agent" yaml:"user_agent"`
}

// ImagesConfig controls gallery URL construction.
type ImagesConfig struct {
	BaseURL   string `koanf:"base_url" yaml:"base_url"`
	Transform string `koanf:"transform" yaml:"transform"`
}

// SiteConfig holds branding.
type SiteConfig struct {
	Name string `koanf:"name" yaml:"name"`
}

// ContactConfig holds the number shown when a visitor reveals dealer details.
type ContactConfig struct {
	Phone string `koanf:"phone" yaml:"phone"`
}

// CatalogConfig controls catalog pages.
type CatalogConfig struct {
	PageSize int `koanf:"page_size" yaml:"page_size"`
}

// StoreConfig selects the enquiry database.
type StoreConfig struct {
	Driver string `koanf:"driver" yaml:"driver"` // sqlite or postgres
	DSN    string `koanf:"dsn" yaml:"dsn"`
}

// SiteSettings groups the sections every AutoHub process needs.
type SiteSettings struct {
	API     APIConfig     `koanf:"api" yaml:"api"`
	Images  ImagesConfig  `koanf:"images" yaml:"images"`
	Site    SiteConfig    `koanf:"site" yaml:"site"`
	Contact ContactConfig `koanf:"contact" yaml:"contact"`
	Catalog CatalogConfig `koanf:"catalog" yaml:"catalog"`
	Store   StoreConfig   `koanf:"store" yaml:"store"`
}

// Validate checks URLs and the store driver.
func (s *SiteSettings) Validate() error {
	if err := validateHTTPURL("api.base_url", s.API.BaseURL); err != nil {
		return err
	}
	if err := validateHTTPURL("images.base_url", s.Images.BaseURL); err != nil {
		return err
	}
	switch strings.ToLower(s.Store.Driver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("store.driver must be sqlite or postgres, got %q", s.Store.Driver)
	}
	if strings.EqualFold(s.Store.Driver, "postgres") && s.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required for postgres")
	}
	return nil
}

func validateHTTPURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", key, raw)
	}
	return nil
}
