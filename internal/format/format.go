// internal/format/format.go
//
// Presentation formatting for raw catalog fields.
// Everything here is a pure function of its arguments:
//   - ImageURL:  cover path/URL → canonical big-cover CDN URL (or placeholder).
//   - Date:      unix seconds → pt-BR calendar date.
//   - Rating:    0–100 rating → "87.5/100" or "N/A".

package format

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// Placeholder is shown whenever a game has no usable cover image.
	Placeholder = "https://upload.wikimedia.org/wikipedia/commons/8/8c/No_image_available.svg"

	// CDNHost marks image URLs that are already canonical and pass through untouched.
	CDNHost = "https://images.igdb.com"

	coverBigBase = CDNHost + "/igdb/image/upload/t_cover_big/"

	// NotAvailable is the rating text used when a game has no numeric rating.
	NotAvailable = "N/A"

	// DateLayout renders dates the way the pt-BR locale does (dd/mm/yyyy).
	DateLayout = "02/01/2006"
)

// Image size tokens used by the CDN inside image paths.
const (
	SizeThumb         = "t_thumb"
	SizeCoverBig      = "t_cover_big"
	SizeScreenshotBig = "t_screenshot_big"
)

// ImageURL normalizes a cover reference into a displayable URL.
// Empty covers map to Placeholder; URLs on the CDN host are returned unchanged;
// anything else is treated as "<path>/<image id>" and rebuilt as a big cover URL.
func ImageURL(cover string) string {
	if cover == "" {
		return Placeholder
	}
	if strings.Contains(cover, CDNHost) {
		return cover
	}
	id := cover
	if i := strings.LastIndex(cover, "/"); i >= 0 {
		id = cover[i+1:]
	}
	return coverBigBase + id
}

// Date formats unix seconds as dd/mm/yyyy in loc. A nil timestamp yields "".
func Date(unixSeconds *int64, loc *time.Location) string {
	if unixSeconds == nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(*unixSeconds * 1000).In(loc).Format(DateLayout)
}

// RatingValue returns the rating rounded to one decimal, or NotAvailable.
func RatingValue(r *float64) string {
	if r == nil || math.IsNaN(*r) || math.IsInf(*r, 0) {
		return NotAvailable
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

// Rating returns "<value>/100" for known ratings and exactly NotAvailable otherwise.
func Rating(r *float64) string {
	v := RatingValue(r)
	if v == NotAvailable {
		return v
	}
	return v + "/100"
}

// Upscale rewrites the first thumbnail size token in u to size.
func Upscale(u, size string) string {
	return strings.Replace(u, SizeThumb, size, 1)
}

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// uriComponent undoes the query escapes that encodeURIComponent leaves alone.
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers escape a URI component:
// spaces become %20 and !'()* stay as they are.
func EncodeURIComponent(s string) string {
	return uriComponent.Replace(url.QueryEscape(s))
}
