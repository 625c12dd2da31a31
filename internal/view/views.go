// Package view holds the page controllers. Each controller fetches from the
// catalog, renders cards or layouts and writes them into page containers.
// Controllers never return errors: failures are logged and shown in place.
package view

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gamecatalog/web/internal/game"
)

// Catalog is the part of the catalog client the controllers use.
type Catalog interface {
	SearchGames(ctx context.Context, term string) ([]game.Summary, error)
	StructuredQuery(ctx context.Context, query string) ([]game.Summary, error)
	GetGameByID(ctx context.Context, id string) (*game.Detail, error)
	GetPrices(ctx context.Context, name string) (*game.PriceResult, error)
}

// Views runs the search, home and details flows.
type Views struct {
	catalog Catalog
	cards   CardBuilder
	log     zerolog.Logger
	now     func() time.Time
	loc     *time.Location
}

// Option configures Views.
type Option func(*Views)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Views) { v.log = l }
}

// WithClock sets the time source used for the recent releases window.
func WithClock(now func() time.Time) Option {
	return func(v *Views) {
		if now != nil {
			v.now = now
		}
	}
}

// WithLocation sets the zone dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(v *Views) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// New returns controllers backed by c.
func New(c Catalog, opts ...Option) *Views {
	v := &Views{
		catalog: c,
		log:     zerolog.Nop(),
		now:     time.Now,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.cards = CardBuilder{Loc: v.loc, Log: v.log}
	return v
}

// Cards returns the card builder the controllers render with.
func (v *Views) Cards() CardBuilder { return v.cards }
