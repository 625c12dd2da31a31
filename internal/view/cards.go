package view

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gamecatalog/web/internal/format"
	"github.com/gamecatalog/web/internal/game"
)

// CardType selects the styling class of a card.
type CardType string

const (
	GameCard    CardType = "gameCard"
	ReleaseCard CardType = "releaseCard"
)

// EnterDuration is how long a card stays in its entering state.
const EnterDuration = 500 * time.Millisecond

// UnknownName replaces a missing game name.
const UnknownName = "Jogo desconhecido"

type cardData struct {
	Class       string
	Link        bool
	ID          int64
	Image       string
	Placeholder string
	Name        string
	Badge       string
	Rating      string
	Released    string
	DelayMs     int64
	EnterMs     int64
}

// CardBuilder renders game summaries as cards.
type CardBuilder struct {
	Loc *time.Location
	Log zerolog.Logger
}

// Build renders g as a card of type ct that starts entering after delay.
// Missing optional fields fall back to defaults. A game without an id is
// logged and rendered without a link to its details page.
func (cb CardBuilder) Build(g game.Summary, ct CardType, delay time.Duration) (string, error) {
	if ct == "" {
		ct = GameCard
	}
	name := g.Name
	if name == "" {
		name = UnknownName
	}
	if g.ID == 0 {
		cb.Log.Error().Str("name", name).Msg("game card without id")
	}

	data := cardData{
		Class:       string(ct),
		Link:        g.ID != 0,
		ID:          g.ID,
		Image:       format.ImageURL(g.Cover.URL),
		Placeholder: format.Placeholder,
		Name:        name,
		Rating:      format.Rating(g.Rating),
		Released:    releaseDate(g.FirstReleaseDate, cb.Loc),
		DelayMs:     delay.Milliseconds(),
		EnterMs:     EnterDuration.Milliseconds(),
	}
	if data.Rating != format.NotAvailable {
		data.Badge = format.RatingValue(g.Rating)
	}
	return exec("card", data)
}

// releaseDate formats a release timestamp, treating zero as unknown.
func releaseDate(ts *int64, loc *time.Location) string {
	if ts == nil || *ts == 0 {
		return ""
	}
	return format.Date(ts, loc)
}
