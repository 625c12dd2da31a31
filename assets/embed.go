// Package assets holds the page shells and stylesheet the server renders.
//
// Shells are embedded. When a pages directory is configured, a shell present
// there replaces the embedded copy.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

//go:embed pages/*.html static/*
var FS embed.FS

// Page shell names.
const (
	IndexPage   = "index.html"
	ResultsPage = "results.html"
	DetailsPage = "game-details.html"
)

var shells = map[string]bool{IndexPage: true, ResultsPage: true, DetailsPage: true}

// ErrUnknownPage is returned for names that are not page shells.
var ErrUnknownPage = errors.New("assets: unknown page")

// Pages loads page shells.
type Pages struct {
	override fs.FS
}

// NewPages returns a loader that prefers shells found in dir. An empty dir
// uses the embedded shells only.
func NewPages(dir string) *Pages {
	p := &Pages{}
	if dir != "" {
		p.override = os.DirFS(dir)
	}
	return p
}

// Load returns the markup of the named shell.
func (p *Pages) Load(name string) ([]byte, error) {
	if !shells[name] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, name)
	}
	if p.override != nil {
		b, err := fs.ReadFile(p.override, name)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("assets: read %s: %w", name, err)
		}
	}
	return fs.ReadFile(FS, "pages/"+name)
}

// Static returns the stylesheet tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
