package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/autohub/internal/listing"
	"github.com/leapstack-labs/autohub/internal/listing/listingtest"
)

func TestErrorMessage(t *testing.T) {
	const lead = "Sorry, we couldn't load the vehicle details. "
	assert.Equal(t, lead+"No vehicle data found", ErrorMessage(lead, listing.ErrNotFound))
	assert.Equal(t, lead+"Failed to fetch vehicle data: Not Found",
		ErrorMessage(lead, &listing.StatusError{Resource: "vehicle data", Code: 404, Status: "Not Found"}))
	assert.Equal(t, "Sorry, we couldn't load the vehicle details.", ErrorMessage(lead, errors.New("")))
}

func TestNavItems(t *testing.T) {
	tests := []struct {
		path   string
		active string
	}{
		{"/", "Home"},
		{"/vehicles", "Vehicles"},
		{"/about", "About"},
		{"/contact", "Contact"},
		{"/vehicle/8712345", ""},
		{"/vehicles/extra", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			items := NavItems(tt.path)
			assert.Len(t, items, 4)

			var active []string
			for _, item := range items {
				if item.Active {
					active = append(active, item.Label)
					assert.Equal(t, "nav-link active", NavClass(item))
				}
			}
			if tt.active == "" {
				assert.Empty(t, active)
			} else {
				assert.Equal(t, []string{tt.active}, active)
			}
		})
	}
}

func TestBreadcrumb(t *testing.T) {
	tests := []struct {
		name              string
		make, model, kind string
		want              []Crumb
	}{
		{
			name: "full",
			make: "Toyota", model: "Corolla Cross", kind: "Used",
			want: []Crumb{
				{Label: "Home", Href: "/"},
				{Label: "Toyota", Href: "/brand/toyota"},
				{Label: "Corolla Cross", Href: "/brand/toyota/corolla-cross"},
				{Label: "Used"},
			},
		},
		{
			name: "brand page",
			make: "Land Rover",
			want: []Crumb{
				{Label: "Home", Href: "/"},
				{Label: "Land Rover"},
			},
		},
		{
			name: "model page",
			make: "Ford", model: "Ranger",
			want: []Crumb{
				{Label: "Home", Href: "/"},
				{Label: "Ford", Href: "/brand/ford"},
				{Label: "Ranger"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Breadcrumb(tt.make, tt.model, tt.kind))
		})
	}
}

func TestNewVehicleCard(t *testing.T) {
	card := NewVehicleCard(listingtest.Corolla(), listing.ImageConfig{})

	assert.Equal(t, "/vehicle/8712345", card.Href)
	assert.Equal(t, "R\u00a0389\u00a0900,00", card.Price)
	assert.Equal(t, "2022", card.Year)
	assert.Equal(t, "Bellville, Western Cape", card.Location)
	assert.Equal(t,
		"https://img-ik.cars.co.za/ik-seo/2022/07/14/tr:n-stock_large/8712345/toyota-corolla-cross.jpg?v=0",
		card.Thumbnail)

	ranger := NewVehicleCard(listingtest.Ranger(), listing.ImageConfig{})
	assert.Empty(t, ranger.Thumbnail, "no photos")

	polo := NewVehicleCard(listingtest.Polo(), listing.ImageConfig{})
	assert.Empty(t, polo.Location, "no seller")
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrorStatus(fmt.Errorf("%w: %q", listing.ErrInvalidID, "../")))
	assert.Equal(t, http.StatusNotFound, ErrorStatus(listing.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, ErrorStatus(&listing.StatusError{Resource: "vehicle data", Code: 404, Status: "Not Found"}))
	assert.Equal(t, http.StatusBadGateway, ErrorStatus(&listing.StatusError{Resource: "vehicle data", Code: 500, Status: "Internal Server Error"}))
	assert.Equal(t, http.StatusBadGateway, ErrorStatus(errors.New("dial tcp: refused")))
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "AutoHub", PageTitle("", "AutoHub"))
	assert.Equal(t, "Vehicles - AutoHub", PageTitle("Vehicles", "AutoHub"))
}

func TestTelHref(t *testing.T) {
	assert.Equal(t, "tel:0827093821", TelHref("082 709 3821"))
	assert.Equal(t, "tel:+27821234567", TelHref(" +27 82 123 4567 "))
}
