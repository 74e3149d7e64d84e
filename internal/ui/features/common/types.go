// Package common provides shared types and utilities for UI features.
package common

import (
	"context"

	"github.com/leapstack-labs/autohub/internal/listing"
)

// DatastarScript is the client runtime every page loads.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Listings is the part of the listing client the pages read from.
type Listings interface {
	Vehicle(ctx context.Context, id string) (*listing.Vehicle, error)
	Vehicles(ctx context.Context, q listing.Query) (*listing.Page, error)
}

// Site holds the settings every page renders with.
type Site struct {
	Name     string
	Phone    string
	Images   listing.ImageConfig
	PageSize int
	IsDev    bool
}

// PageMeta is what the layout needs to render the document shell.
type PageMeta struct {
	Title       string
	Description string
	CurrentPath string
	Site        Site
}

// NavItem is a top navigation link.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// Crumb is one breadcrumb entry. The last crumb has no Href.
type Crumb struct {
	Label string
	Href  string
}

// ErrorView is the content of the error panel.
type ErrorView struct {
	Title   string
	Message string
}

// VehicleCard is a catalog tile.
type VehicleCard struct {
	ID        string
	Title     string
	Href      string
	Thumbnail string
	Price     string
	Year      string
	Mileage   string
	Location  string
}
