package view

import (
	"context"

	"github.com/gamecatalog/web/internal/dom"
	"github.com/gamecatalog/web/internal/format"
	"github.com/gamecatalog/web/internal/game"
)

const (
	MsgNotFound      = "Jogo não encontrado."
	MsgDetailsError  = "Erro ao carregar detalhes do jogo. Tente novamente mais tarde."
	MsgNoDate        = "Data não disponível"
	MsgNoDescription = "Descrição não disponível."
	MsgNoCover       = "Capa não disponível"
	MsgPricesLoading = "carregando preços..."
)

type detailsData struct {
	Name          string
	Released      string
	Rating        string
	Video         string
	Image         string
	Cover         string
	CoverMissing  string
	Description   string
	PricesLoading string
}

// Details renders the details page of game id, then fills its price table
// from a second lookup. A failed price lookup leaves the loading row.
func (v *Views) Details(ctx context.Context, st *State, b Bindings, id string) {
	container := b.Details
	if id == "" {
		v.set(container, mustExec("inline", MsgNotFound))
		return
	}

	d, err := v.catalog.GetGameByID(ctx, id)
	if err != nil {
		v.log.Error().Err(err).Str("id", id).Msg("load game details")
		v.set(container, mustExec("inline", MsgDetailsError))
		return
	}

	html, err := exec("details", v.detailsData(d))
	if err != nil {
		v.log.Error().Err(err).Str("id", id).Msg("render game details")
		v.set(container, mustExec("inline", MsgDetailsError))
		return
	}
	v.set(container, html)

	tbody := priceBody(container)
	if tbody == nil {
		return
	}
	var res *game.PriceResult
	if d.Name != "" {
		res, err = v.catalog.GetPrices(ctx, d.Name)
		if err != nil {
			v.log.Error().Err(err).Str("name", d.Name).Msg("load prices")
			return
		}
	}
	v.set(tbody, mustExec("price-rows", game.PriceRows(res, d)))
}

func (v *Views) detailsData(d *game.Detail) detailsData {
	data := detailsData{
		Name:          d.Name,
		Released:      releaseDate(d.FirstReleaseDate, v.loc),
		Rating:        format.Rating(d.Rating),
		Cover:         d.CoverImage(),
		CoverMissing:  MsgNoCover,
		Description:   d.Description,
		PricesLoading: MsgPricesLoading,
	}
	if data.Name == "" {
		data.Name = UnknownName
	}
	if data.Released == "" {
		data.Released = MsgNoDate
	}
	if data.Description == "" {
		data.Description = MsgNoDescription
	}

	switch c := d.Centerpiece(); c.Kind {
	case game.CenterVideo:
		data.Video = c.URL
	case game.CenterScreenshot, game.CenterCover:
		data.Image = c.URL
	}
	return data
}

func priceBody(container *dom.Element) *dom.Element {
	tables := container.QueryClass("price-table")
	if len(tables) == 0 {
		return nil
	}
	return tables[0].Query("tbody")
}
