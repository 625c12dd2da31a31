// internal/httpserver/routes_pages.go
//
// Page routes:
//   - GET /, /index.html       → home shell (recent releases + popular games)
//   - GET /results.html?query= → results shell, searched for query
//   - GET /game-details.html?id= → details shell for one game
//   - GET /search?query=       → search form target, redirects to results
//   - GET /static/*            → stylesheet
//
// Each page handler loads its shell, parses it, lets the dispatcher fill the
// containers and renders the document back.

package httpserver

import (
	"bytes"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/gamecatalog/web/assets"
	"github.com/gamecatalog/web/internal/dispatch"
	"github.com/gamecatalog/web/internal/dom"
)

// mountPages registers the page, search and static routes.
func (s *Server) mountPages() {
	s.r.Get("/", s.page(assets.IndexPage))
	s.r.Get("/"+assets.IndexPage, s.page(assets.IndexPage))
	s.r.Get("/"+assets.ResultsPage, s.page(assets.ResultsPage))
	s.r.Get("/"+assets.DetailsPage, s.page(assets.DetailsPage))

	s.r.Get(dispatch.SearchAction, s.handleSearch)

	static := http.StripPrefix("/static/", http.FileServer(http.FS(assets.Static())))
	s.r.Handle("/static/*", static)
}

// page serves one dispatched page shell.
func (s *Server) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := hlog.FromRequest(r)

		raw, err := s.pages.Load(name)
		if err != nil {
			log.Error().Err(err).Str("page", name).Msg("load page shell")
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}
		doc, err := dom.Parse(bytes.NewReader(raw))
		if err != nil {
			log.Error().Err(err).Str("page", name).Msg("parse page shell")
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}

		st, kind := s.disp.Run(r.Context(), doc, r.URL.Query())
		ev := log.Debug().Str("page", name).Str("view", string(kind))
		if st != nil {
			ev = ev.Str("current_view", string(st.CurrentView)).Str("last_search", st.LastSearch)
		}
		ev.Msg("page dispatched")

		var buf bytes.Buffer
		if err := doc.Render(&buf); err != nil {
			log.Error().Err(err).Str("page", name).Msg("render page")
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// handleSearch is the search form target: a non-empty query navigates to
// the results page, an empty one stays put.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	target, ok := dispatch.SubmitSearch(r.URL.Query().Get(dispatch.QueryParam))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/"+target, http.StatusSeeOther)
}
