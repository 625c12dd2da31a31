package view

import (
	"context"
	"sync"
	"time"

	"github.com/gamecatalog/web/internal/catalog"
	"github.com/gamecatalog/web/internal/dom"
	"github.com/gamecatalog/web/internal/stagger"
)

// Entrance delay steps of the home sections.
const (
	ReleasesStep = 100 * time.Millisecond
	PopularStep  = 50 * time.Millisecond
)

const (
	MsgReleasesError = "Não foi possível carregar os lançamentos recentes."
	MsgPopularError  = "Não foi possível carregar os jogos populares."
)

type section struct {
	name      string
	container *dom.Element
	query     string
	card      CardType
	step      time.Duration
	errMsg    string
}

// Home fills the recent releases and popular games sections. The two
// sections load concurrently and fail independently.
func (v *Views) Home(ctx context.Context, st *State, b Bindings) {
	st.CurrentView = HomeView
	sections := []section{
		{"recent releases", b.Releases, catalog.RecentReleasesQuery(v.now()), ReleaseCard, ReleasesStep, MsgReleasesError},
		{"popular games", b.Popular, catalog.PopularQuery, GameCard, PopularStep, MsgPopularError},
	}

	var wg sync.WaitGroup
	for _, s := range sections {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.loadSection(ctx, s)
		}()
	}
	wg.Wait()
}

func (v *Views) loadSection(ctx context.Context, s section) {
	if s.container == nil {
		v.log.Debug().Str("section", s.name).Msg("container missing, skipping")
		return
	}
	games, err := v.catalog.StructuredQuery(ctx, s.query)
	if err != nil {
		v.log.Error().Err(err).Str("section", s.name).Msg("load home section")
		v.showError(s.container, s.errMsg, false)
		return
	}

	s.container.Clear()
	if err := v.appendCards(ctx, s.container, games, s.card, stagger.Step(s.step)); err != nil {
		v.log.Error().Err(err).Str("section", s.name).Msg("render home section")
		v.showError(s.container, s.errMsg, false)
	}
}
