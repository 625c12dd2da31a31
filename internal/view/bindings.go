package view

import "github.com/gamecatalog/web/internal/dom"

// Element ids and classes the page shells expose.
const (
	IDSearch            = "search"
	IDSearchButton      = "btnSearch"
	IDGames             = "gamesContainer"
	IDReleases          = "releasesContainer"
	IDPopular           = "popularGamesContainer"
	IDDetails           = "gameDetailsContainer"
	IDResultsGrid       = "search-results-grid"
	IDQueryDisplay      = "search-query-display"
	IDSearchInput       = "search-input"
	IDSearchForm        = "search-form"
	ClassResultsSection = "search-results-section"
)

// Bindings are the page elements the controllers write to, resolved once per
// document. Any of them may be nil when the page does not carry it.
type Bindings struct {
	SearchInput    *dom.Element
	SearchButton   *dom.Element
	Games          *dom.Element
	Releases       *dom.Element
	Popular        *dom.Element
	Details        *dom.Element
	ResultsGrid    *dom.Element
	QueryDisplay   *dom.Element
	HeaderInput    *dom.Element
	SearchForm     *dom.Element
	ResultsSection *dom.Element
}

// Bind looks up every binding in doc.
func Bind(doc *dom.Document) Bindings {
	return Bindings{
		SearchInput:    doc.GetElementByID(IDSearch),
		SearchButton:   doc.GetElementByID(IDSearchButton),
		Games:          doc.GetElementByID(IDGames),
		Releases:       doc.GetElementByID(IDReleases),
		Popular:        doc.GetElementByID(IDPopular),
		Details:        doc.GetElementByID(IDDetails),
		ResultsGrid:    doc.GetElementByID(IDResultsGrid),
		QueryDisplay:   doc.GetElementByID(IDQueryDisplay),
		HeaderInput:    doc.GetElementByID(IDSearchInput),
		SearchForm:     doc.GetElementByID(IDSearchForm),
		ResultsSection: doc.FirstByClass(ClassResultsSection),
	}
}
