// Package dispatch decides which controller drives a loaded page and runs it
// once per document.
package dispatch

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/gamecatalog/web/internal/dom"
	"github.com/gamecatalog/web/internal/format"
	"github.com/gamecatalog/web/internal/view"
)

// Page is the kind of page a document was recognized as.
type Page string

const (
	PageNone    Page = ""
	PageHome    Page = "home"
	PageResults Page = "results"
	PageDetails Page = "details"
)

// Search form wiring on the home page.
const (
	SearchAction = "/search"
	QueryParam   = "query"
	IDParam      = "id"
	ResultsPath  = "results.html"
)

// Detect picks the page kind from the bound containers. A details container
// wins over a results grid, which wins over the home page.
func Detect(b view.Bindings) Page {
	switch {
	case b.Details != nil:
		return PageDetails
	case b.ResultsGrid != nil:
		return PageResults
	default:
		return PageHome
	}
}

// SubmitSearch is the search form's submit handler. It returns the results
// page to navigate to, or ok=false when q is empty.
func SubmitSearch(q string) (target string, ok bool) {
	if q == "" {
		return "", false
	}
	return ResultsPath + "?" + QueryParam + "=" + format.EncodeURIComponent(q), true
}

// Dispatcher runs the controller matching a page.
type Dispatcher struct {
	views *view.Views
	log   zerolog.Logger
}

// New returns a dispatcher over views.
func New(views *view.Views, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{views: views, log: log}
}

// Run binds doc, runs the matching controller and returns the resulting
// state. It runs at most once per document; later calls return PageNone
// and a nil state.
func (d *Dispatcher) Run(ctx context.Context, doc *dom.Document, params url.Values) (*view.State, Page) {
	var (
		st   *view.State
		page = PageNone
	)
	doc.OnReady(func() {
		st = view.NewState()
		b := view.Bind(doc)
		page = Detect(b)
		d.log.Debug().Str("page", string(page)).Msg("dispatch")

		switch page {
		case PageDetails:
			d.views.Details(ctx, st, b, params.Get(IDParam))
		case PageResults:
			d.results(ctx, st, b, params.Get(QueryParam))
		default:
			wireSearchForm(b)
			d.views.Home(ctx, st, b)
		}
	})
	return st, page
}

func (d *Dispatcher) results(ctx context.Context, st *view.State, b view.Bindings, query string) {
	container := b.ResultsGrid
	if container == nil {
		container = b.Games
	}
	b.QueryDisplay.SetText(query)
	if query != "" {
		b.HeaderInput.SetAttr("value", query)
	}
	if query != "" && container != nil {
		d.views.Search(ctx, st, b, query, container)
	}
}

// wireSearchForm points the home search form at the search redirect, so a
// submit navigates to the results page instead of posting back.
func wireSearchForm(b view.Bindings) {
	if b.SearchForm == nil {
		return
	}
	b.SearchForm.SetAttr("action", SearchAction)
	b.SearchForm.SetAttr("method", "get")
	b.HeaderInput.SetAttr("name", QueryParam)
}
