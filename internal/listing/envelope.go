package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the wrapper every API response arrives in.
type envelope struct {
	Cache struct {
		Data     []resource `json:"data"`
		Included []resource `json:"included"`
		Meta     *pageMeta  `json:"meta"`
	} `json:"cache"`
}

type resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    json.RawMessage         `json:"attributes"`
	Relationships map[string]relationship `json:"relationships"`
}

type relationship struct {
	Data *resourceRef `json:"data"`
}

type resourceRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type pageMeta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

func (r resource) empty() bool {
	trimmed := bytes.TrimSpace(r.Attributes)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeVehicle folds the first data item and the first included seller into a Vehicle.
func decodeVehicle(env *envelope) (*Vehicle, error) {
	if len(env.Cache.Data) == 0 || env.Cache.Data[0].empty() {
		return nil, ErrNotFound
	}

	v, err := decodeResource(env.Cache.Data[0])
	if err != nil {
		return nil, err
	}

	v.Seller = nil
	if len(env.Cache.Included) > 0 && !env.Cache.Included[0].empty() {
		seller, err := decodeSeller(env.Cache.Included[0])
		if err != nil {
			return nil, err
		}
		v.Seller = seller
	}

	return v, nil
}

// decodePage maps a catalog envelope, resolving each vehicle's seller through
// its relationship to the included resources.
func decodePage(env *envelope, q Query) (*Page, error) {
	sellers := make(map[string]*Seller, len(env.Cache.Included))
	for _, inc := range env.Cache.Included {
		if inc.empty() || inc.ID == "" {
			continue
		}
		seller, err := decodeSeller(inc)
		if err != nil {
			return nil, err
		}
		sellers[inc.ID] = seller
	}

	page := &Page{Vehicles: make([]*Vehicle, 0, len(env.Cache.Data))}
	for _, res := range env.Cache.Data {
		if res.empty() {
			continue
		}
		v, err := decodeResource(res)
		if err != nil {
			return nil, err
		}
		v.Seller = nil
		if rel, ok := res.Relationships["seller"]; ok && rel.Data != nil {
			v.Seller = sellers[rel.Data.ID]
		}
		page.Vehicles = append(page.Vehicles, v)
	}

	page.Page = max(q.Page, 1)
	page.PerPage = len(page.Vehicles)
	page.Total = len(page.Vehicles)
	if m := env.Cache.Meta; m != nil {
		if m.Page > 0 {
			page.Page = m.Page
		}
		if m.PerPage > 0 {
			page.PerPage = m.PerPage
		}
		if m.Total > 0 {
			page.Total = m.Total
		}
	}

	return page, nil
}

func decodeResource(res resource) (*Vehicle, error) {
	var v Vehicle
	if err := json.Unmarshal(res.Attributes, &v); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle %s: %w", res.ID, err)
	}
	v.ID = res.ID
	return &v, nil
}

func decodeSeller(res resource) (*Seller, error) {
	var s Seller
	if err := json.Unmarshal(res.Attributes, &s); err != nil {
		return nil, fmt.Errorf("failed to decode seller %s: %w", res.ID, err)
	}
	return &s, nil
}
