package enquiry

import "context"

// Store persists enquiries and phone reveals.
type Store interface {
	// Create assigns an ID and timestamp to e and saves it.
	Create(ctx context.Context, e *Enquiry) error
	// List returns enquiries, newest first.
	List(ctx context.Context, opts ListOptions) ([]*Enquiry, error)
	// RecordReveal notes that a visitor revealed the dealer phone for a vehicle.
	RecordReveal(ctx context.Context, vehicleID string) error
	// RevealCounts returns reveal totals per vehicle, most revealed first.
	RevealCounts(ctx context.Context) ([]RevealCount, error)
	Close() error
}

// ListOptions filters List.
type ListOptions struct {
	VehicleID string
	Limit     int
}

// RevealCount is the number of phone reveals for one vehicle.
type RevealCount struct {
	VehicleID string `json:"vehicle_id"`
	Count     int    `json:"count"`
}

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50
