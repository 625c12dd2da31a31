package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gamecatalog/web/internal/format"
	"github.com/gamecatalog/web/internal/game"
)

// Structured query limits shared by the home page sections.
const (
	QueryLimit          = 12
	RecentReleaseWindow = 90 * 24 * time.Hour
)

const queryFields = "fields name, cover.url, rating, first_release_date, summary;"

// PopularQuery lists the best rated games regardless of release date.
var PopularQuery = fmt.Sprintf("%s sort rating desc; limit %d;", queryFields, QueryLimit)

// RecentReleasesQuery lists the best rated games released in the 90 days up to now.
func RecentReleasesQuery(now time.Time) string {
	to := now.Unix()
	from := now.Add(-RecentReleaseWindow).Unix()
	return fmt.Sprintf("%s where first_release_date >= %d & first_release_date <= %d; sort rating desc; limit %d;",
		queryFields, from, to, QueryLimit)
}

// SearchGames runs a keyword search. An empty result is an empty slice, not an error.
func (c *Client) SearchGames(ctx context.Context, term string) ([]game.Summary, error) {
	endpoint := c.baseURL + "/games?search=" + format.EncodeURIComponent(term)
	return c.summaries(ctx, http.MethodGet, endpoint, nil)
}

// StructuredQuery posts a filter/sort/limit expression and returns the matching games.
func (c *Client) StructuredQuery(ctx context.Context, query string) ([]game.Summary, error) {
	body, err := json.Marshal(struct {
		Query string `json:"query"`
	}{Query: query})
	if err != nil {
		return nil, err
	}
	return c.summaries(ctx, http.MethodPost, c.baseURL+"/games/query", body)
}

// GetGameByID fetches the full record of one game.
func (c *Client) GetGameByID(ctx context.Context, id string) (*game.Detail, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	endpoint := c.baseURL + "/games/" + url.PathEscape(id)

	var out *game.Detail
	err := c.doJSON(ctx, http.MethodGet, endpoint, nil, func(b []byte) error {
		var d game.Detail
		if err := json.Unmarshal(b, &d); err != nil {
			return err
		}
		out = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetPrices looks up store prices for a game name.
func (c *Client) GetPrices(ctx context.Context, name string) (*game.PriceResult, error) {
	endpoint := c.baseURL + "/price?name=" + format.EncodeURIComponent(name)

	var out *game.PriceResult
	err := c.doJSON(ctx, http.MethodGet, endpoint, nil, func(b []byte) error {
		res, err := game.DecodePriceResult(b)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) summaries(ctx context.Context, method, endpoint string, body []byte) ([]game.Summary, error) {
	var out []game.Summary
	err := c.doJSON(ctx, method, endpoint, body, func(b []byte) error {
		var list []game.Summary
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		if list == nil {
			list = []game.Summary{}
		}
		out = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
