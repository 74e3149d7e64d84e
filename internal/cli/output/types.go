package output

import "time"

// SellerOutput is the JSON form of a dealer.
type SellerOutput struct {
	Name       string  `json:"name"`
	SellerType string  `json:"seller_type,omitempty"`
	Locality   string  `json:"locality,omitempty"`
	Province   string  `json:"province,omitempty"`
	Lat        float64 `json:"lat,omitempty"`
	Lng        float64 `json:"lng,omitempty"`
}

// VehicleOutput is the JSON form of a vehicle.
type VehicleOutput struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Make         string        `json:"make"`
	Model        string        `json:"model"`
	Variant      string        `json:"variant,omitempty"`
	Year         int           `json:"year"`
	Price        float64       `json:"price"`
	PriceText    string        `json:"price_text"`
	Mileage      string        `json:"mileage"`
	Transmission string        `json:"transmission,omitempty"`
	FuelType     string        `json:"fuel_type,omitempty"`
	Colour       string        `json:"colour,omitempty"`
	Description  string        `json:"description,omitempty"`
	Dealer       string        `json:"dealer,omitempty"`
	Seller       *SellerOutput `json:"seller,omitempty"`
	URL          string        `json:"url"`
	Images       []string      `json:"images,omitempty"`
}

// VehiclesOutput is the JSON form of a catalog page.
type VehiclesOutput struct {
	Vehicles []VehicleOutput `json:"vehicles"`
	Page     int             `json:"page"`
	PerPage  int             `json:"per_page"`
	Total    int             `json:"total"`
}

// EnquiryOutput is the JSON form of a stored enquiry.
type EnquiryOutput struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	Vehicle   string    `json:"vehicle"`
	Dealer    string    `json:"dealer,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// RevealOutput is the JSON form of a phone reveal count.
type RevealOutput struct {
	VehicleID string `json:"vehicle_id"`
	Count     int    `json:"count"`
}

// EnquiriesOutput wraps enquiries and, optionally, reveal counts.
type EnquiriesOutput struct {
	Enquiries []EnquiryOutput `json:"enquiries"`
	Reveals   []RevealOutput  `json:"reveals,omitempty"`
}

// MigrateOutput reports the schema state after migrate.
type MigrateOutput struct {
	Driver  string `json:"driver"`
	DSN     string `json:"dsn"`
	Version int64  `json:"version"`
}
