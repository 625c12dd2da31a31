// internal/dom/dom.go
//
// A parsed HTML page that view controllers mutate before it is served.
// Responsibilities:
//   - Parse a page shell into a node tree (golang.org/x/net/html).
//   - Look elements up by id or class.
//   - Inject HTML fragments, text and attributes into elements.
//   - Render the tree back to HTML.
//
// Notes:
//   - *Element methods are nil-safe: lookups for ids missing from the page
//     return nil, and mutating nil is a no-op.
//   - All access goes through the document mutex; independent view sub-flows
//     may write into different containers concurrently.

package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed page.
type Document struct {
	mu    sync.Mutex
	root  *html.Node
	ready sync.Once
}

// Element is a handle to one element node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// OnReady runs fn the first time it is called for this document and never again.
func (d *Document) OnReady(fn func()) {
	d.ready.Do(fn)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// String renders the document, or returns "" when rendering fails.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// GetElementByID returns the element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := find(d.root, func(n *html.Node) bool { return attr(n, "id") == id })
	return d.wrap(n)
}

// FirstByClass returns the first element carrying class, or nil.
func (d *Document) FirstByClass(class string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := find(d.root, func(n *html.Node) bool { return hasClass(n, class) })
	return d.wrap(n)
}

// IDs lists the ids present in the document, in document order.
func (d *Document) IDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	walk(d.root, func(n *html.Node) {
		if id := attr(n, "id"); id != "" {
			out = append(out, id)
		}
	})
	return out
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	if e == nil {
		return ""
	}
	return e.Attr("id")
}

// Attr returns the value of attribute key, or "".
func (e *Element) Attr(key string) string {
	if e == nil {
		return ""
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return attr(e.node, key)
}

// HasAttr reports whether attribute key is present.
func (e *Element) HasAttr(key string) bool {
	if e == nil {
		return false
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for _, a := range e.node.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets attribute key to val, replacing any previous value.
func (e *Element) SetAttr(key, val string) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.node, key, val)
}

// RemoveAttr deletes attribute key.
func (e *Element) RemoveAttr(key string) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	out := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Key != key {
			out = append(out, a)
		}
	}
	e.node.Attr = out
}

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool {
	if e == nil {
		return false
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return hasClass(e.node, class)
}

// Clear removes all children.
func (e *Element) Clear() {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	clearChildren(e.node)
}

// SetInnerHTML replaces the element's children with the parsed fragment.
func (e *Element) SetInnerHTML(fragment string) error {
	if e == nil {
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), contextNode(e.node))
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	clearChildren(e.node)
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// AppendHTML parses fragment and appends its nodes after the existing children.
func (e *Element) AppendHTML(fragment string) error {
	if e == nil {
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), contextNode(e.node))
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// SetText replaces the children with a single text node.
func (e *Element) SetText(s string) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	clearChildren(e.node)
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var b strings.Builder
	walk(e.node, func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return b.String()
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	if e == nil {
		return ""
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// Children returns the element children (text and comments are skipped).
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Element{doc: e.doc, node: c})
		}
	}
	return out
}

// QueryClass returns descendants carrying class, in document order.
func (e *Element) QueryClass(class string) []*Element {
	if e == nil {
		return nil
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(n *html.Node) {
			if hasClass(n, class) {
				out = append(out, &Element{doc: e.doc, node: n})
			}
		})
	}
	return out
}

// Query returns the first descendant with the given tag name, or nil.
func (e *Element) Query(tag string) *Element {
	if e == nil {
		return nil
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if n := find(c, func(n *html.Node) bool { return n.Data == tag }); n != nil {
			return &Element{doc: e.doc, node: n}
		}
	}
	return nil
}

// ----------------------------- tree helpers --------------------------------

func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode || n.Type == html.TextNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hit := find(c, match); hit != nil {
			return hit
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// contextNode builds a detached copy of n to use as fragment parsing context,
// so parsing never touches the live tree.
func contextNode(n *html.Node) *html.Node {
	a := n.DataAtom
	if a == 0 {
		a = atom.Lookup([]byte(n.Data))
	}
	return &html.Node{Type: html.ElementNode, Data: n.Data, DataAtom: a}
}
