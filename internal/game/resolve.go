// internal/game/resolve.go
//
// Priority-fallback rules for the details page.
// Each chain is an ordered list of rules evaluated top-down; the first rule
// that produces a value wins:
//   - Centerpiece: video → screenshot → cover → icon.
//   - CoverImage:  resolved coverUrl → raw string cover → cover object url.
//   - PriceRows:   unavailable marker → store mapping → embedded list → none.

package game

import (
	"github.com/gamecatalog/web/internal/format"
)

// Rule produces an Out from an In, or reports that it does not apply.
type Rule[In, Out any] struct {
	Name    string
	Produce func(in In) (Out, bool)
}

// First evaluates rules in order and returns the first produced value along
// with the name of the rule that produced it. ok is false when no rule applied.
func First[In, Out any](rules []Rule[In, Out], in In) (v Out, name string, ok bool) {
	for _, r := range rules {
		if out, hit := r.Produce(in); hit {
			return out, r.Name, true
		}
	}
	return v, "", false
}

// YouTubeEmbedBase prefixes video ids to build an embeddable player URL.
const YouTubeEmbedBase = "https://www.youtube.com/embed/"

// CenterpieceKind says which media the details page shows in its main slot.
type CenterpieceKind string

const (
	CenterVideo      CenterpieceKind = "video"
	CenterScreenshot CenterpieceKind = "screenshot"
	CenterCover      CenterpieceKind = "cover"
	CenterIcon       CenterpieceKind = "icon"
)

// Centerpiece is the resolved main media of the details page.
type Centerpiece struct {
	Kind CenterpieceKind
	URL  string // empty for CenterIcon
}

// CoverRules resolves the big cover image URL of a detail record.
var CoverRules = []Rule[*Detail, string]{
	{Name: "coverUrl", Produce: func(d *Detail) (string, bool) {
		return d.CoverURL, d.CoverURL != ""
	}},
	{Name: "cover string", Produce: func(d *Detail) (string, bool) {
		if !d.Cover.Raw || d.Cover.URL == "" {
			return "", false
		}
		return format.Upscale(d.Cover.URL, format.SizeCoverBig), true
	}},
	{Name: "cover object", Produce: func(d *Detail) (string, bool) {
		if d.Cover.Raw || d.Cover.URL == "" {
			return "", false
		}
		return format.Upscale(d.Cover.URL, format.SizeCoverBig), true
	}},
}

// ScreenshotRules resolves the first screenshot URL.
var ScreenshotRules = []Rule[*Detail, string]{
	{Name: "screenshotUrls", Produce: func(d *Detail) (string, bool) {
		if len(d.ScreenshotURLs) == 0 {
			return "", false
		}
		return d.ScreenshotURLs[0], d.ScreenshotURLs[0] != ""
	}},
	{Name: "screenshots", Produce: func(d *Detail) (string, bool) {
		if len(d.Screenshots) == 0 || d.Screenshots[0].URL == "" {
			return "", false
		}
		return format.Upscale(d.Screenshots[0].URL, format.SizeScreenshotBig), true
	}},
}

// CenterpieceRules picks the details page main media.
var CenterpieceRules = []Rule[*Detail, Centerpiece]{
	{Name: "video", Produce: func(d *Detail) (Centerpiece, bool) {
		if len(d.Videos) == 0 || d.Videos[0].VideoID == "" {
			return Centerpiece{}, false
		}
		return Centerpiece{Kind: CenterVideo, URL: YouTubeEmbedBase + d.Videos[0].VideoID}, true
	}},
	{Name: "screenshot", Produce: func(d *Detail) (Centerpiece, bool) {
		u, _, ok := First(ScreenshotRules, d)
		return Centerpiece{Kind: CenterScreenshot, URL: u}, ok
	}},
	{Name: "cover", Produce: func(d *Detail) (Centerpiece, bool) {
		u, _, ok := First(CoverRules, d)
		return Centerpiece{Kind: CenterCover, URL: u}, ok
	}},
	{Name: "icon", Produce: func(*Detail) (Centerpiece, bool) {
		return Centerpiece{Kind: CenterIcon}, true
	}},
}

// CoverImage returns the resolved cover URL or "" when the record has none.
func (d *Detail) CoverImage() string {
	if d == nil {
		return ""
	}
	u, _, _ := First(CoverRules, d)
	return u
}

// Centerpiece returns the main media for the details page.
func (d *Detail) Centerpiece() Centerpiece {
	if d == nil {
		return Centerpiece{Kind: CenterIcon}
	}
	c, _, ok := First(CenterpieceRules, d)
	if !ok {
		return Centerpiece{Kind: CenterIcon}
	}
	return c
}

// PriceSource says where the rows of the price table came from.
type PriceSource string

const (
	PricesUnavailable PriceSource = "unavailable"
	PricesStores      PriceSource = "stores"
	PricesEmbedded    PriceSource = "embedded"
	PricesNone        PriceSource = "none"
)

// DefaultPriceMessage is shown when no price source has anything to list.
const DefaultPriceMessage = "Preços não disponíveis"

// PriceLookup pairs a price response with the detail record it was fetched for.
type PriceLookup struct {
	Result *PriceResult
	Detail *Detail
}

// PriceTable is the resolved content of the details page price table:
// either Rows or a single Message row.
type PriceTable struct {
	Source  PriceSource
	Message string
	Rows    []StorePrice
}

// PriceRules resolves the price table once the price lookup answered.
var PriceRules = []Rule[PriceLookup, PriceTable]{
	{Name: "unavailable", Produce: func(in PriceLookup) (PriceTable, bool) {
		if in.Result == nil || !in.Result.Unavailable {
			return PriceTable{}, false
		}
		msg := in.Result.Message
		if msg == "" {
			msg = DefaultPriceMessage
		}
		return PriceTable{Source: PricesUnavailable, Message: msg}, true
	}},
	{Name: "stores", Produce: func(in PriceLookup) (PriceTable, bool) {
		if in.Result == nil || len(in.Result.Stores) == 0 {
			return PriceTable{}, false
		}
		rows := make([]StorePrice, 0, len(in.Result.Stores))
		for _, sp := range in.Result.Stores {
			rows = append(rows, StorePrice{Store: format.Capitalize(sp.Store), Price: sp.Price})
		}
		return PriceTable{Source: PricesStores, Rows: rows}, true
	}},
	{Name: "embedded", Produce: func(in PriceLookup) (PriceTable, bool) {
		if in.Detail == nil || len(in.Detail.Prices) == 0 {
			return PriceTable{}, false
		}
		return PriceTable{Source: PricesEmbedded, Rows: in.Detail.Prices}, true
	}},
	{Name: "none", Produce: func(PriceLookup) (PriceTable, bool) {
		return PriceTable{Source: PricesNone, Message: DefaultPriceMessage}, true
	}},
}

// PriceRows resolves the price table for a lookup result.
func PriceRows(res *PriceResult, d *Detail) PriceTable {
	t, _, _ := First(PriceRules, PriceLookup{Result: res, Detail: d})
	return t
}
