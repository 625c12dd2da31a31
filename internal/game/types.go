// internal/game/types.go
//
// Catalog records as returned by the backend API.
// Defines:
//   - Summary: the card-level record used by search and home listings.
//   - Detail:  the full record behind the details page.
//   - PriceResult: store prices or an unavailability marker.
//
// Decoding is tolerant: optional fields that are absent, null, or shaped
// differently than expected leave the zero value instead of failing.

package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Cover is a cover reference. The backend sends either a bare string or an
// object with a "url" property; Raw records which one arrived.
type Cover struct {
	URL string
	Raw bool // true when the JSON value was a plain string
}

// UnmarshalJSON accepts "…", {"url":"…"} and null.
func (c *Cover) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = Cover{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Cover{URL: s, Raw: true}
		return nil
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		// Unknown shapes count as "no cover".
		*c = Cover{}
		return nil
	}
	*c = Cover{URL: obj.URL}
	return nil
}

// MarshalJSON writes the cover back in the shape it was received.
func (c Cover) MarshalJSON() ([]byte, error) {
	if c.URL == "" {
		return []byte("null"), nil
	}
	if c.Raw {
		return json.Marshal(c.URL)
	}
	return json.Marshal(map[string]string{"url": c.URL})
}

// Summary is a game as listed in search results and home sections.
type Summary struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Cover            Cover    `json:"cover"`
	Rating           *float64 `json:"rating,omitempty"`             // 0–100, nil when unknown
	FirstReleaseDate *int64   `json:"first_release_date,omitempty"` // unix seconds
}

// UnmarshalJSON decodes each field on its own. Only a non-object value is an
// error; a malformed field keeps its zero value.
func (s *Summary) UnmarshalJSON(b []byte) error {
	fields, err := objectFields(b)
	if err != nil {
		return err
	}
	*s = Summary{}
	s.decodeFields(fields)
	return nil
}

func (s *Summary) decodeFields(f map[string]json.RawMessage) {
	optional(f["id"], &s.ID)
	optional(f["name"], &s.Name)
	optional(f["cover"], &s.Cover)
	s.Rating = number(f["rating"])
	s.FirstReleaseDate = timestamp(f["first_release_date"])
}

// Video is a trailer reference (YouTube id).
type Video struct {
	VideoID string `json:"video_id"`
}

// Screenshot is a screenshot reference as sent by the backend.
type Screenshot struct {
	URL string `json:"url"`
}

// UnmarshalJSON accepts "…" and {"url":"…"}. Other shapes give an empty URL.
func (sc *Screenshot) UnmarshalJSON(b []byte) error {
	var c Cover
	_ = c.UnmarshalJSON(b)
	*sc = Screenshot{URL: c.URL}
	return nil
}

// StorePrice is one store's listed price.
type StorePrice struct {
	Store string `json:"store"`
	Price string `json:"price"`
}

// Detail is the full record for the details page.
type Detail struct {
	Summary
	Description    string       `json:"summary"`
	Videos         []Video      `json:"videos"`
	Screenshots    []Screenshot `json:"screenshots"`
	ScreenshotURLs []string     `json:"screenshotUrls"`
	CoverURL       string       `json:"coverUrl"`
	Prices         StorePrices  `json:"prices"`
}

// UnmarshalJSON decodes a Detail with the same per-field tolerance as Summary.
func (d *Detail) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*d = Detail{}
	d.Summary.decodeFields(f)
	optional(f["summary"], &d.Description)
	optional(f["videos"], &d.Videos)
	optional(f["screenshots"], &d.Screenshots)
	optional(f["screenshotUrls"], &d.ScreenshotURLs)
	optional(f["coverUrl"], &d.CoverURL)
	optional(f["prices"], &d.Prices)
	return nil
}

// objectFields splits a JSON object into its raw members. null gives no members.
func objectFields(b []byte) (map[string]json.RawMessage, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil, nil
	}
	if len(b) == 0 || b[0] != '{' {
		return nil, fmt.Errorf("record is not a JSON object: %.20q", b)
	}
	var f map[string]json.RawMessage
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// optional decodes raw into dst, leaving dst untouched when raw is absent or
// does not fit.
func optional[T any](raw json.RawMessage, dst *T) {
	if len(raw) == 0 {
		return
	}
	var v T
	if json.Unmarshal(raw, &v) == nil {
		*dst = v
	}
}

// number returns raw as a float when it is a finite JSON number.
func number(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var v float64
	if json.Unmarshal(raw, &v) != nil {
		return nil
	}
	return &v
}

// timestamp returns unix seconds from a JSON number or a numeric string.
func timestamp(raw json.RawMessage) *int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var v float64
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		v = f
	} else if json.Unmarshal(raw, &v) != nil {
		return nil
	}
	n := int64(v)
	return &n
}

// StorePrices is the price list embedded in a Detail.
type StorePrices []StorePrice

// UnmarshalJSON accepts a list of {store, price}, a store→price object, or an
// unavailability marker (which decodes as an empty list).
func (p *StorePrices) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*p = nil
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '[':
		var raw []struct {
			Store string          `json:"store"`
			Price json.RawMessage `json:"price"`
		}
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil
		}
		for _, r := range raw {
			*p = append(*p, StorePrice{Store: r.Store, Price: priceText(r.Price)})
		}
	case '{':
		res, err := DecodePriceResult(b)
		if err != nil || res.Unavailable {
			return nil
		}
		*p = res.Stores
	}
	return nil
}

// PriceResult is the answer of the price lookup endpoint.
type PriceResult struct {
	Unavailable bool
	Message     string
	Stores      []StorePrice // in the order the backend listed them
}

// ErrNotObject is returned when a price payload is not a JSON object.
var ErrNotObject = errors.New("price payload is not a JSON object")

// DecodePriceResult decodes a price payload, preserving the order of the
// store keys. {"unavailable": true, "message": "…"} yields an Unavailable result.
func DecodePriceResult(b []byte) (*PriceResult, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	res := &PriceResult{}
	var unavailable bool
	var message string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("price %q: %w", key, err)
		}
		switch key {
		case "unavailable":
			_ = json.Unmarshal(val, &unavailable)
		case "message":
			_ = json.Unmarshal(val, &message)
		default:
			res.Stores = append(res.Stores, StorePrice{Store: key, Price: priceText(val)})
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	if unavailable {
		return &PriceResult{Unavailable: true, Message: message}, nil
	}
	return res, nil
}

// priceText renders a JSON price value: strings unquoted, anything else verbatim.
func priceText(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}
	var s string
	if v[0] == '"' && json.Unmarshal(v, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(v))
}
