package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamecatalog/web/assets"
	"github.com/gamecatalog/web/internal/catalog"
	"github.com/gamecatalog/web/internal/dispatch"
	"github.com/gamecatalog/web/internal/dom"
	"github.com/gamecatalog/web/internal/view"
)

func backend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /games", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "nada" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"name":"Zelda"},{"id":2,"name":"Zelda II"}]`))
	})
	mux.HandleFunc("POST /games/query", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":3,"name":"Mario"}]`))
	})
	mux.HandleFunc("GET /games/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "42" {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":42,"name":"Hades","summary":"Rogue-like","rating":93.1}`))
	})
	mux.HandleFunc("GET /price", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"steam":"R$ 47,49"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newServer(t *testing.T, pagesDir string) *Server {
	t.Helper()
	api := backend(t)
	client := catalog.NewClient(catalog.WithBaseURL(api.URL), catalog.WithHTTPClient(api.Client()))
	views := view.New(client, view.WithLocation(time.UTC))
	return New(assets.NewPages(pagesDir), dispatch.New(views, zerolog.Nop()), Options{
		Origins:        []string{"http://localhost:5173"},
		HandlerTimeout: 5 * time.Second,
		Logger:         zerolog.Nop(),
	})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *dom.Document {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	doc, err := dom.ParseString(rec.Body.String())
	require.NoError(t, err)
	return doc
}

func TestHealth(t *testing.T) {
	rec := get(t, newServer(t, ""), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestHomePage(t *testing.T) {
	s := newServer(t, "")
	for _, path := range []string{"/", "/index.html"} {
		doc := parse(t, get(t, s, path))
		assert.Len(t, doc.GetElementByID("releasesContainer").QueryClass("releaseCard"), 1, path)
		assert.Len(t, doc.GetElementByID("popularGamesContainer").QueryClass("gameCard"), 1, path)
		assert.Equal(t, "/search", doc.GetElementByID("search-form").Attr("action"), path)
	}
}

func TestResultsPage(t *testing.T) {
	doc := parse(t, get(t, newServer(t, ""), "/results.html?query=zelda"))
	grid := doc.GetElementByID("search-results-grid")
	cards := grid.QueryClass("gameCard")
	require.Len(t, cards, 2)
	assert.Equal(t, "Zelda", cards[0].Query("h3").Text())
	assert.Equal(t, "Zelda II", cards[1].Query("h3").Text())
	assert.Equal(t, "zelda", doc.GetElementByID("search-query-display").Text())
	assert.Equal(t, "display: block", doc.FirstByClass("search-results-section").Attr("style"))
	assert.False(t, doc.GetElementByID("btnSearch").HasAttr("disabled"))
}

func TestResultsPageNoResults(t *testing.T) {
	doc := parse(t, get(t, newServer(t, ""), "/results.html?query=nada"))
	nr := doc.GetElementByID("search-results-grid").QueryClass("no-results")
	require.Len(t, nr, 1)
	assert.Equal(t, `Nenhum resultado encontrado para "nada"`, nr[0].Text())
}

func TestDetailsPage(t *testing.T) {
	s := newServer(t, "")

	doc := parse(t, get(t, s, "/game-details.html?id=42"))
	c := doc.GetElementByID("gameDetailsContainer")
	assert.Equal(t, "Hades", c.QueryClass("game-title")[0].Text())
	assert.Contains(t, c.QueryClass("game-meta")[0].Text(), "93.1/100")
	rows := c.QueryClass("price-table")[0].Query("tbody").Children()
	require.Len(t, rows, 1)
	assert.Equal(t, "SteamR$ 47,49--", rows[0].Text())

	doc = parse(t, get(t, s, "/game-details.html?id=7"))
	assert.Equal(t, view.MsgDetailsError, doc.GetElementByID("gameDetailsContainer").Text())

	doc = parse(t, get(t, s, "/game-details.html"))
	assert.Equal(t, view.MsgNotFound, doc.GetElementByID("gameDetailsContainer").Text())
}

func TestSearchRedirect(t *testing.T) {
	s := newServer(t, "")

	rec := get(t, s, "/search?query=the+witcher")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/results.html?query=the%20witcher", rec.Header().Get("Location"))

	rec = get(t, s, "/search?query=")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestStaticAndNotFound(t *testing.T) {
	s := newServer(t, "")

	rec := get(t, s, "/static/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".card-enter")

	rec = get(t, s, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["error"])
	assert.Equal(t, "/nope", body["path"])
}

func TestPagesDirOverride(t *testing.T) {
	dir := t.TempDir()
	shell := `<html><body><h1 id="title">custom</h1><div id="popularGamesContainer"></div></body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, assets.IndexPage), []byte(shell), 0o644))
	s := newServer(t, dir)

	doc := parse(t, get(t, s, "/"))
	assert.Equal(t, "custom", doc.GetElementByID("title").Text())
	assert.Len(t, doc.GetElementByID("popularGamesContainer").QueryClass("gameCard"), 1)

	doc = parse(t, get(t, s, "/results.html?query=zelda"))
	assert.Len(t, doc.GetElementByID("search-results-grid").QueryClass("gameCard"), 2)
}

func TestCORSPreflight(t *testing.T) {
	s := newServer(t, "")
	req := httptest.NewRequest(http.MethodOptions, "/index.html", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
