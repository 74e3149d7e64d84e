package pages

import (
	"encoding/json"
	"strconv"

	"github.com/leapstack-labs/autohub/internal/enquiry"
	"github.com/leapstack-labs/autohub/internal/ui/features/common"
)

// Spec is one label/value cell of a specs grid.
type Spec struct {
	Label string
	Value string
}

// SellerView is the seller block.
type SellerView struct {
	Name     string
	Type     string
	Location string
}

// ContactView is what the phone reveal shows.
type ContactView struct {
	Agent string
	Phone string
}

// EnquiryForm is the contact form state.
type EnquiryForm struct {
	Action   string
	Dealer   string
	SiteName string
	Contact  enquiry.Contact
	Errors   enquiry.ValidationErrors
	Status   StatusView
}

// StatusView is the message block above the enquiry form.
type StatusView struct {
	Success string
	Errors  []string
}

// DetailView is everything the vehicle page renders.
type DetailView struct {
	ID          string
	Title       string
	Price       string
	Crumbs      []common.Crumb
	Images      []string
	ImagePrefix string
	Selected    int
	Specs       []Spec
	Details     []Spec
	Seller      *SellerView
	Description string
	PhoneAction string
	Contact     *ContactView
	Form        EnquiryForm
}

// MainImage returns the URL of the initially selected image.
func (v DetailView) MainImage() string {
	if len(v.Images) == 0 {
		return ""
	}
	return v.Images[v.Selected]
}

// ThumbAlt is the alt text of the thumbnail at index i.
func (v DetailView) ThumbAlt(i int) string {
	return v.Title + " - View " + strconv.Itoa(i+1)
}

// ThumbClass marks the selected thumbnail for the first paint; datastar keeps
// it in sync afterwards.
func (v DetailView) ThumbClass(i int) string {
	if i == v.Selected {
		return "gallery-thumb selected"
	}
	return "gallery-thumb"
}

// GallerySignals seeds the client-side selected image index.
func (v DetailView) GallerySignals() string {
	return `{"selectedImage":` + strconv.Itoa(v.Selected) + `}`
}

// MainSrcExpr binds the main image src to the selected index.
func (v DetailView) MainSrcExpr() string {
	return strconv.Quote(v.ImagePrefix) + " + $selectedImage"
}

// Post returns a datastar expression posting to action.
func Post(action string) string {
	return "@post(" + strconv.Quote(action) + ")"
}

// Signals seeds the form's bound values.
func (f EnquiryForm) Signals() string {
	raw, err := json.Marshal(map[string]enquiry.Contact{"enquiry": f.Contact})
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// ErrorFor returns the validation message of field, if any.
func (f EnquiryForm) ErrorFor(field string) string {
	return f.Errors[field]
}
