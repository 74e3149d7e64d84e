package config

import "time"

// Default configuration values.
const (
	DefaultAPIBaseURL     = "https://nextjs-rho-red-22.vercel.app"
	DefaultAPITimeout     = 10 * time.Second
	DefaultUserAgent      = "autohub"
	DefaultImagesBaseURL  = "https://img-ik.cars.co.za/ik-seo"
	DefaultImageTransform = "tr:n-stock_large"
	DefaultSiteName       = "AutoHub"
	DefaultContactPhone   = "082 709 3821"
	DefaultPageSize       = 12
	DefaultStoreDriver    = "sqlite"
	DefaultStoreDSN       = ".autohub/autohub.db"
)

// ApplyDefaults fills unset fields of a SiteSettings.
func ApplyDefaults(s *SiteSettings) {
	if s == nil {
		return
	}
	if s.API.BaseURL == "" {
		s.API.BaseURL = DefaultAPIBaseURL
	}
	if s.API.Timeout <= 0 {
		s.API.Timeout = DefaultAPITimeout
	}
	if s.API.UserAgent == "" {
		s.API.UserAgent = DefaultUserAgent
	}
	if s.Images.BaseURL == "" {
		s.Images.BaseURL = DefaultImagesBaseURL
	}
	if s.Images.Transform == "" {
		s.Images.Transform = DefaultImageTransform
	}
	if s.Site.Name == "" {
		s.Site.Name = DefaultSiteName
	}
	if s.Contact.Phone == "" {
		s.Contact.Phone = DefaultContactPhone
	}
	if s.Catalog.PageSize <= 0 {
		s.Catalog.PageSize = DefaultPageSize
	}
	if s.Store.Driver == "" {
		s.Store.Driver = DefaultStoreDriver
	}
	if s.Store.DSN == "" && s.Store.Driver == DefaultStoreDriver {
		s.Store.DSN = DefaultStoreDSN
	}
}
