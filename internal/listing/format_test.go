package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	const nbsp = "\u00a0"
	tests := []struct {
		price float64
		want  string
	}{
		{price: 389900, want: "R" + nbsp + "389" + nbsp + "900,00"},
		{price: 1234.5, want: "R" + nbsp + "1" + nbsp + "234,50"},
		{price: 999, want: "R" + nbsp + "999,00"},
		{price: 0, want: "R" + nbsp + "0,00"},
		{price: 1250000, want: "R" + nbsp + "1" + nbsp + "250" + nbsp + "000,00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.price))
		})
	}
}

func TestFormatMileage(t *testing.T) {
	assert.Equal(t, "45 000 km", FormatMileage("45 000 km"))
	assert.Equal(t, "", FormatMileage(""))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Toyota", want: "toyota"},
		{in: "Land Rover", want: "land-rover"},
		{in: "Corolla   Cross", want: "corolla-cross"},
		{in: "Range\tRover Sport", want: "range-rover-sport"},
		{in: "BMW", want: "bmw"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Dealer", Humanize("dealer"))
	assert.Equal(t, "Private Seller", Humanize("private_seller"))
}
