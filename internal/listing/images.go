package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// ImageConfig locates vehicle photos on the image CDN.
type ImageConfig struct {
	BaseURL   string
	Transform string
}

// Default image CDN settings.
const (
	DefaultImageBaseURL   = "https://img-ik.cars.co.za/ik-seo"
	DefaultImageTransform = "tr:n-stock_large"
)

// Gallery builds the photo URLs for one vehicle.
type Gallery struct {
	prefix string
	Count  int
}

// NewGallery derives the gallery of v. The URL is
// {base}/{path}/{transform}/{id}/{make}-{model}, lower-cased with whitespace
// runs replaced by hyphens, followed by the image extension and "?v={index}".
func NewGallery(v *Vehicle, cfg ImageConfig) Gallery {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultImageBaseURL
	}
	transform := cfg.Transform
	if transform == "" {
		transform = DefaultImageTransform
	}

	raw := fmt.Sprintf("%s/%s/%s/%s/%s-%s",
		strings.TrimRight(base, "/"), v.Image.Path, transform, v.ID, v.Make, v.Model)

	return Gallery{
		prefix: Slug(raw) + v.Image.Extension + "?v=",
		Count:  max(v.Image.Count, 0),
	}
}

// Prefix is every image URL minus the trailing index.
func (g Gallery) Prefix() string {
	return g.prefix
}

// URL returns the URL of the image at index.
func (g Gallery) URL(index int) string {
	return g.prefix + strconv.Itoa(index)
}

// URLs returns one URL per image, in order.
func (g Gallery) URLs() []string {
	urls := make([]string, g.Count)
	for i := range urls {
		urls[i] = g.URL(i)
	}
	return urls
}

// Clamp pins index into the gallery's range. An empty gallery clamps to 0.
func (g Gallery) Clamp(index int) int {
	if index < 0 || g.Count == 0 {
		return 0
	}
	if index >= g.Count {
		return g.Count - 1
	}
	return index
}
