// Package listing is the client for the remote vehicle listing API.
//
// The API is owned by another team; AutoHub only reads from it. Every request
// goes to the network: responses are never cached, and concurrent requests for
// the same resource share a single round trip.
package listing

// Image describes the photo set attached to a vehicle.
type Image struct {
	Version   int    `json:"version"`
	Count     int    `json:"count"`
	Path      string `json:"path"`
	Name      string `json:"name"`
	Extension string `json:"extension"`
}

// Seller is the dealer or private seller a vehicle is listed by.
type Seller struct {
	Name       string  `json:"name"`
	SellerType string  `json:"seller_type"`
	Locality   string  `json:"locality"`
	Province   string  `json:"province"`
	Lat        float64 `json:"coord_0"`
	Lng        float64 `json:"coord_1"`
}

// Location returns "Locality, Province", skipping empty parts.
func (s *Seller) Location() string {
	if s == nil {
		return ""
	}
	switch {
	case s.Locality != "" && s.Province != "":
		return s.Locality + ", " + s.Province
	case s.Locality != "":
		return s.Locality
	default:
		return s.Province
	}
}

// Vehicle is a single listing with its seller folded in.
type Vehicle struct {
	ID           string  `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	Mileage      string  `json:"mileage"`
	Description  string  `json:"description"`
	Image        Image   `json:"image"`
	Title        string  `json:"title"`
	Variant      string  `json:"variant"`
	Colour       string  `json:"colour"`
	Transmission string  `json:"transmission"`
	FuelType     string  `json:"fuel_type"`
	AgentName    string  `json:"agent_name"`
	Seller       *Seller `json:"seller"`
}

// DealerName returns the name shown on the contact form: the seller when the
// API included one, otherwise the listing agent.
func (v *Vehicle) DealerName() string {
	if v.Seller != nil && v.Seller.Name != "" {
		return v.Seller.Name
	}
	return v.AgentName
}

// clone returns a copy that shares no pointers with v.
func (v *Vehicle) clone() *Vehicle {
	c := *v
	if v.Seller != nil {
		s := *v.Seller
		c.Seller = &s
	}
	return &c
}

// Query selects a page of the catalog. Make and Model are passed through to
// the API untouched. A zero PerPage leaves the page size to the API.
type Query struct {
	Page    int
	PerPage int
	Make    string
	Model   string
}

// Page is one page of catalog results.
type Page struct {
	Vehicles []*Vehicle
	Page     int
	PerPage  int
	Total    int
}

// HasPrev reports whether a previous page exists.
func (p *Page) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a following page exists.
func (p *Page) HasNext() bool {
	if p.PerPage <= 0 {
		return false
	}
	return p.Page*p.PerPage < p.Total
}
