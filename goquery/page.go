// Package goquery implements the HTML display surface: a page document with
// a card container and a search field, populated with card nodes.
package goquery

import (
	_ "embed"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kbcards"
	"golang.org/x/net/html"
)

// Selectors locating the surface inside a page shell.
const (
	ContainerSelector   = ".card-container"
	SearchFieldSelector = "#searchField"
)

//go:embed page.html
var defaultShell string

// Page is an HTML document acting as the display surface.
type Page struct {
	doc       *goquery.Document
	container *html.Node
	search    *html.Node // nil if the shell has no search field
}

// NewPage parses a page shell. The shell must contain an element matching
// ContainerSelector; the first match becomes the card container.
func NewPage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, kbcards.WrapError(kbcards.EINVALID, err, "failed to parse page")
	}

	container := doc.Find(ContainerSelector).First()
	if container.Length() == 0 {
		return nil, kbcards.Errorf(kbcards.EINVALID, "page has no %s element", ContainerSelector)
	}

	p := &Page{
		doc:       doc,
		container: container.Nodes[0],
	}
	if search := doc.Find(SearchFieldSelector).First(); search.Length() > 0 {
		p.search = search.Nodes[0]
	}
	return p, nil
}

// NewDefaultPage returns a page built from the embedded shell.
func NewDefaultPage() *Page {
	p, err := NewPage(strings.NewReader(defaultShell))
	if err != nil {
		panic("goquery: embedded page shell is invalid: " + err.Error())
	}
	return p
}

// Clear removes every node from the card container.
func (p *Page) Clear() {
	for c := p.container.FirstChild; c != nil; {
		next := c.NextSibling
		p.container.RemoveChild(c)
		c = next
	}
}

// Append adds a node at the end of the card container.
func (p *Page) Append(n *html.Node) {
	p.container.AppendChild(n)
}

// SetQuery reflects query in the search field's value attribute.
// It is a no-op when the page has no search field.
func (p *Page) SetQuery(query string) {
	if p.search == nil {
		return
	}
	for i, a := range p.search.Attr {
		if a.Key == "value" {
			p.search.Attr[i].Val = query
			return
		}
	}
	p.search.Attr = append(p.search.Attr, html.Attribute{Key: "value", Val: query})
}

// Container returns the card container as a selection.
func (p *Page) Container() *goquery.Selection {
	return goquery.NewDocumentFromNode(p.container).Selection
}

// ContainerHTML returns the serialized contents of the card container.
func (p *Page) ContainerHTML() (string, error) {
	return p.Container().Html()
}

// Render writes the whole document to w.
func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.doc.Nodes[0])
}

// String returns the whole document as HTML.
func (p *Page) String() string {
	var b strings.Builder
	if err := p.Render(&b); err != nil {
		return ""
	}
	return b.String()
}
