package listing

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vehicleEnvelope = `{
  "cache": {
    "data": [{
      "id": "5551234",
      "type": "vehicle",
      "attributes": {
        "make": "BMW", "model": "3 Series", "year": 2020, "price": 459000,
        "mileage": "32 000 km", "description": "M Sport",
        "image": {"version": 2, "count": 3, "path": "2020/01/09", "name": "bmw", "extension": ".jpg"},
        "title": "2020 BMW 3 Series 320i M Sport", "variant": "320i M Sport",
        "colour": "Black", "transmission": "Automatic", "fuel_type": "Petrol",
        "agent_name": "Lerato"
      }
    }],
    "included": [{
      "id": "77", "type": "seller",
      "attributes": {"name": "Jozi Prestige", "seller_type": "dealer", "locality": "Sandton",
                     "province": "Gauteng", "coord_0": -26.1, "coord_1": 28.05}
    }]
  }
}`

func TestDecodeVehicle(t *testing.T) {
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(vehicleEnvelope), &env))

	got, err := decodeVehicle(&env)
	require.NoError(t, err)

	want := &Vehicle{
		ID:           "5551234",
		Make:         "BMW",
		Model:        "3 Series",
		Year:         2020,
		Price:        459000,
		Mileage:      "32 000 km",
		Description:  "M Sport",
		Image:        Image{Version: 2, Count: 3, Path: "2020/01/09", Name: "bmw", Extension: ".jpg"},
		Title:        "2020 BMW 3 Series 320i M Sport",
		Variant:      "320i M Sport",
		Colour:       "Black",
		Transmission: "Automatic",
		FuelType:     "Petrol",
		AgentName:    "Lerato",
		Seller: &Seller{
			Name:       "Jozi Prestige",
			SellerType: "dealer",
			Locality:   "Sandton",
			Province:   "Gauteng",
			Lat:        -26.1,
			Lng:        28.05,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decodeVehicle() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeVehicle_NotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no cache", body: `{}`},
		{name: "empty data", body: `{"cache": {"data": []}}`},
		{name: "null attributes", body: `{"cache": {"data": [{"id": "1", "attributes": null}]}}`},
		{name: "null first item", body: `{"cache": {"data": [null]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env envelope
			require.NoError(t, json.Unmarshal([]byte(tt.body), &env))
			_, err := decodeVehicle(&env)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestDecodeVehicle_IDFromResourceWins(t *testing.T) {
	body := `{"cache": {"data": [{"id": "real", "attributes": {"id": "stale", "title": "X"}}]}}`
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	v, err := decodeVehicle(&env)
	require.NoError(t, err)
	assert.Equal(t, "real", v.ID)
	assert.Nil(t, v.Seller)
}

func TestDecodePage_DefaultsMeta(t *testing.T) {
	body := `{"cache": {"data": [{"id": "1", "attributes": {"title": "A"}}, {"id": "2", "attributes": {"title": "B"}}]}}`
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	page, err := decodePage(&env, Query{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.PerPage)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasNext())
}
