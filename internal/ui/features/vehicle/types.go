// Package vehicle provides the vehicle detail page: gallery, specs, the phone
// reveal and the enquiry form.
package vehicle

import (
	"strconv"

	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/listing"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
	"github.com/leapstack-labs/autohub/internal/ui/features/vehicle/pages"
	"github.com/leapstack-labs/autohub/internal/ui/session"
)

const (
	errorTitle       = "Error Loading Vehicle"
	errorMessage     = "Sorry, we couldn't load the vehicle details. "
	errorDescription = "Unable to load vehicle details."
	sendFailed       = "Sorry, we couldn't send your enquiry. Please try again."
)

// fieldOrder is the order validation messages are listed in.
var fieldOrder = []string{"name", "email", "phone", "message", "vehicle"}

func phoneAction(id string) string {
	return common.VehicleHref(id) + "/phone"
}

func enquiryAction(id string) string {
	return common.VehicleHref(id) + "/enquiries"
}

// parseImage reads ?image=N; the gallery clamps it.
func parseImage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func buildDetailView(v *listing.Vehicle, site common.Site, image int) pages.DetailView {
	gallery := listing.NewGallery(v, site.Images)

	view := pages.DetailView{
		ID:          v.ID,
		Title:       v.Title,
		Price:       listing.FormatPrice(v.Price),
		Crumbs:      common.Breadcrumb(v.Make, v.Model, v.Variant),
		Images:      gallery.URLs(),
		ImagePrefix: gallery.Prefix(),
		Selected:    gallery.Clamp(image),
		Specs: []pages.Spec{
			{Label: "Mileage", Value: listing.FormatMileage(v.Mileage)},
			{Label: "Transmission", Value: v.Transmission},
			{Label: "Fuel Type", Value: v.FuelType},
			{Label: "Color", Value: v.Colour},
		},
		Details: []pages.Spec{
			{Label: "Year", Value: strconv.Itoa(v.Year)},
			{Label: "Variant", Value: v.Variant},
		},
		Description: listing.PlainText(v.Description),
		PhoneAction: phoneAction(v.ID),
		Form: pages.EnquiryForm{
			Action:   enquiryAction(v.ID),
			Dealer:   v.DealerName(),
			SiteName: site.Name,
			Contact:  enquiry.Contact{Message: enquiry.DefaultMessage(v.Title)},
		},
	}

	if v.Seller != nil {
		view.Seller = &pages.SellerView{
			Name:     v.Seller.Name,
			Type:     listing.Humanize(v.Seller.SellerType),
			Location: v.Seller.Location(),
		}
	}

	return view
}

func contactView(v *listing.Vehicle, site common.Site) pages.ContactView {
	return pages.ContactView{Agent: v.AgentName, Phone: site.Phone}
}

func detailMeta(v *listing.Vehicle, site common.Site, path string) common.PageMeta {
	return common.PageMeta{
		Title:       common.PageTitle(v.Title, site.Name),
		Description: listing.Excerpt(v.Description, 160),
		CurrentPath: path,
		Site:        site,
	}
}

func errorMeta(site common.Site, path string) common.PageMeta {
	return common.PageMeta{
		Title:       common.PageTitle("Error", site.Name),
		Description: errorDescription,
		CurrentPath: path,
		Site:        site,
	}
}

// prefill starts the form from what the visitor entered last time, keeping
// the vehicle-specific default message.
func prefill(form *pages.EnquiryForm, visitor enquiry.Contact) {
	form.Contact.Name = visitor.Name
	form.Contact.Email = visitor.Email
	form.Contact.Phone = visitor.Phone
}

func orderedErrors(errs enquiry.ValidationErrors) []string {
	msgs := make([]string, 0, len(errs))
	for _, field := range fieldOrder {
		if msg, ok := errs[field]; ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func successMessage(name, dealer string) string {
	return "Thank you, " + name + ". Your enquiry has been sent to " + dealer + "."
}

func recentVehicle(view pages.DetailView) session.RecentVehicle {
	rv := session.RecentVehicle{ID: view.ID, Title: view.Title, Price: view.Price}
	if len(view.Images) > 0 {
		rv.Thumbnail = view.Images[0]
	}
	return rv
}
