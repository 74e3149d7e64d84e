package common

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/autohub/internal/listing"
)

// NavItems returns the top navigation with the item matching currentPath
// marked active. Only exact matches count.
func NavItems(currentPath string) []NavItem {
	items := []NavItem{
		{Label: "Home", Href: "/"},
		{Label: "Vehicles", Href: "/vehicles"},
		{Label: "About", Href: "/about"},
		{Label: "Contact", Href: "/contact"},
	}
	for i := range items {
		items[i].Active = items[i].Href == currentPath
	}
	return items
}

// NavClass returns the CSS class for a navigation link.
func NavClass(item NavItem) string {
	if item.Active {
		return "nav-link active"
	}
	return "nav-link"
}

// BrandHref links to the catalog filtered by make.
func BrandHref(make string) string {
	return "/brand/" + listing.Slug(make)
}

// ModelHref links to the catalog filtered by make and model.
func ModelHref(make, model string) string {
	return BrandHref(make) + "/" + listing.Slug(model)
}

// VehicleHref links to a vehicle detail page.
func VehicleHref(id string) string {
	return "/vehicle/" + id
}

// Breadcrumb builds Home › Brand › Model › Type. Empty trailing parts are
// dropped; the last crumb is always text only.
func Breadcrumb(make, model, kind string) []Crumb {
	crumbs := []Crumb{{Label: "Home", Href: "/"}}
	if make != "" {
		crumbs = append(crumbs, Crumb{Label: make, Href: BrandHref(make)})
		if model != "" {
			crumbs = append(crumbs, Crumb{Label: model, Href: ModelHref(make, model)})
		}
	}
	if kind != "" {
		crumbs = append(crumbs, Crumb{Label: kind})
	} else {
		crumbs[len(crumbs)-1].Href = ""
	}
	return crumbs
}

// NewVehicleCard maps a vehicle onto a catalog tile.
func NewVehicleCard(v *listing.Vehicle, images listing.ImageConfig) VehicleCard {
	card := VehicleCard{
		ID:       v.ID,
		Title:    v.Title,
		Href:     VehicleHref(v.ID),
		Price:    listing.FormatPrice(v.Price),
		Year:     strconv.Itoa(v.Year),
		Mileage:  listing.FormatMileage(v.Mileage),
		Location: v.Seller.Location(),
	}
	if g := listing.NewGallery(v, images); g.Count > 0 {
		card.Thumbnail = g.URL(0)
	}
	return card
}

// PageTitle returns "{title} - {site}".
func PageTitle(title, site string) string {
	if title == "" {
		return site
	}
	return title + " - " + site
}

// ErrorStatus maps a listing error onto an HTTP status: 400 for a malformed
// id, 404 when the API has nothing, 502 for any other upstream failure.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, listing.ErrInvalidID):
		return http.StatusBadRequest
	case listing.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// ErrorMessage appends err to a user-facing lead-in, starting the error
// text with a capital letter.
func ErrorMessage(lead string, err error) string {
	msg := err.Error()
	if msg == "" {
		return strings.TrimSpace(lead)
	}
	r, size := utf8.DecodeRuneInString(msg)
	return lead + string(unicode.ToUpper(r)) + msg[size:]
}

// TelHref builds a tel: link with the spacing removed.
func TelHref(phone string) string {
	return "tel:" + strings.Join(strings.Fields(phone), "")
}
