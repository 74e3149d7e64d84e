package pages

import "github.com/leapstack-labs/autohub/internal/ui/features/common"

// CatalogView is one rendered page of the catalog.
type CatalogView struct {
	Heading  string
	Crumbs   []common.Crumb
	Cards    []common.VehicleCard
	Summary  string
	Page     int
	PrevHref string
	NextHref string
	Error    *common.ErrorView
}
