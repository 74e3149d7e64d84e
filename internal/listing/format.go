package listing

import (
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// randFormat groups thousands with a no-break space and uses a decimal comma,
// the way en-ZA renders rand amounts.
const randFormat = "#\u00a0###,##"

// FormatPrice renders a price in South African rand, e.g. "R 189 900,00" with no-break spaces.
func FormatPrice(price float64) string {
	if price < 0 {
		return "-R\u00a0" + humanize.FormatFloat(randFormat, -price)
	}
	return "R\u00a0" + humanize.FormatFloat(randFormat, price)
}

// FormatMileage renders the mileage. The API already sends display text.
func FormatMileage(mileage string) string {
	return mileage
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	lower         = cases.Lower(language.Und)
	title         = cases.Title(language.English)
)

// Slug lower-cases s and replaces every run of whitespace with a hyphen.
func Slug(s string) string {
	return whitespaceRun.ReplaceAllString(lower.String(s), "-")
}

// Humanize turns API enums such as "private_seller" into "Private Seller".
func Humanize(s string) string {
	return title.String(strings.ReplaceAll(s, "_", " "))
}
