package view

// Name identifies which flow last drove the page.
type Name string

const (
	HomeView   Name = "home"
	SearchView Name = "search"
)

// State is the per-page-load UI state. The dispatcher creates one for every
// loaded document and hands it to the controllers; it is never shared across
// requests or persisted.
type State struct {
	IsLoading   bool
	LastSearch  string
	CurrentView Name
}

// NewState returns the state of a freshly loaded page.
func NewState() *State {
	return &State{CurrentView: HomeView}
}
