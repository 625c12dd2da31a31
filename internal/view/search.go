package view

import (
	"context"
	"strings"
	"time"

	"github.com/gamecatalog/web/internal/dom"
	"github.com/gamecatalog/web/internal/game"
	"github.com/gamecatalog/web/internal/stagger"
)

const (
	// SearchStep is the entrance delay between consecutive search results.
	SearchStep = 50 * time.Millisecond

	MsgSearchError = "Ocorreu um erro ao buscar os jogos. Tente novamente."
)

// Search runs a keyword search and renders the results into container.
// An empty term does nothing.
func (v *Views) Search(ctx context.Context, st *State, b Bindings, term string, container *dom.Element) {
	if term == "" {
		return
	}
	st.LastSearch = term
	st.CurrentView = SearchView
	b.ResultsSection.SetAttr("style", "display: block")

	setLoading(st, b.SearchButton, true)
	defer setLoading(st, b.SearchButton, false)

	games, err := v.catalog.SearchGames(ctx, term)
	if err != nil {
		v.log.Error().Err(err).Str("term", term).Msg("search games")
		v.showError(container, MsgSearchError, true)
		return
	}

	container.Clear()
	if len(games) == 0 {
		v.set(container, mustExec("no-results", term))
		return
	}
	if err := v.appendCards(ctx, container, games, GameCard, stagger.Step(SearchStep)); err != nil {
		v.log.Error().Err(err).Str("term", term).Msg("render search results")
		v.showError(container, MsgSearchError, true)
	}
}

// setLoading toggles the search button between its spinner and idle states.
func setLoading(st *State, btn *dom.Element, on bool) {
	st.IsLoading = on
	if on {
		_ = btn.SetInnerHTML(mustExec("spinner", nil))
		btn.SetAttr("disabled", "disabled")
		return
	}
	_ = btn.SetInnerHTML(mustExec("search-icon", nil))
	btn.RemoveAttr("disabled")
}

// appendCards renders games as cards with a staggered entrance and appends
// them to container in input order.
func (v *Views) appendCards(ctx context.Context, container *dom.Element, games []game.Summary, ct CardType, delay stagger.DelayFunc) error {
	cards, err := stagger.Render(ctx, games, delay, func(_ int, g game.Summary, d time.Duration) (string, error) {
		return v.cards.Build(g, ct, d)
	})
	if err != nil {
		return err
	}
	return container.AppendHTML(strings.Join(cards, ""))
}

func (v *Views) showError(container *dom.Element, msg string, large bool) {
	v.set(container, mustExec("error", struct {
		Text  string
		Large bool
	}{msg, large}))
}

func (v *Views) set(container *dom.Element, fragment string) {
	if err := container.SetInnerHTML(fragment); err != nil {
		v.log.Error().Err(err).Str("container", container.ID()).Msg("write container")
	}
}
