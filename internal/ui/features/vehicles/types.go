// Package vehicles provides the catalog pages: all vehicles and the
// per-brand and per-model listings.
package vehicles

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/leapstack-labs/autohub/internal/listing"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
	"github.com/leapstack-labs/autohub/internal/ui/features/vehicles/pages"
)

// catalogRequest is what a catalog URL asks for.
type catalogRequest struct {
	basePath string
	make     string
	model    string
	page     int
}

// parsePage reads ?page=N. Anything that is not a positive integer is page 1.
func parsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// displayName turns a URL slug back into words: "corolla-cross" → "Corolla Cross".
func displayName(slug string) string {
	return listing.Humanize(strings.ReplaceAll(slug, "-", " "))
}

func (c catalogRequest) heading() string {
	switch {
	case c.model != "":
		return displayName(c.make) + " " + displayName(c.model) + " for sale"
	case c.make != "":
		return displayName(c.make) + " for sale"
	default:
		return "All vehicles"
	}
}

func (c catalogRequest) crumbs() []common.Crumb {
	if c.make == "" {
		return nil
	}
	model := ""
	if c.model != "" {
		model = displayName(c.model)
	}
	return common.Breadcrumb(displayName(c.make), model, "")
}

func (c catalogRequest) pageHref(page int) string {
	if page <= 1 {
		return c.basePath
	}
	return c.basePath + "?page=" + strconv.Itoa(page)
}

func buildCatalogView(req catalogRequest, page *listing.Page, images listing.ImageConfig) pages.CatalogView {
	view := pages.CatalogView{
		Heading: req.heading(),
		Crumbs:  req.crumbs(),
		Page:    page.Page,
		Cards:   make([]common.VehicleCard, 0, len(page.Vehicles)),
	}
	for _, v := range page.Vehicles {
		view.Cards = append(view.Cards, common.NewVehicleCard(v, images))
	}

	if len(view.Cards) > 0 {
		first := (page.Page-1)*page.PerPage + 1
		last := first + len(view.Cards) - 1
		view.Summary = "Showing " + humanize.Comma(int64(first)) + "–" + humanize.Comma(int64(last)) +
			" of " + humanize.Comma(int64(page.Total)) + " vehicles"
	}
	if page.HasPrev() {
		view.PrevHref = req.pageHref(page.Page - 1)
	}
	if page.HasNext() {
		view.NextHref = req.pageHref(page.Page + 1)
	}
	return view
}

func errorCatalogView(req catalogRequest, err error) pages.CatalogView {
	return pages.CatalogView{
		Heading: req.heading(),
		Crumbs:  req.crumbs(),
		Page:    req.page,
		Error: &common.ErrorView{
			Title:   "Error Loading Vehicles",
			Message: common.ErrorMessage("Sorry, we couldn't load the vehicle listings. ", err),
		},
	}
}
