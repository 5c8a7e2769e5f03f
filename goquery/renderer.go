package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kbcards"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Renderer implements kbcards.Renderer at compile time.
var _ kbcards.Renderer = (*Renderer)(nil)

// Renderer populates a Page's card container with one article per entry.
// Cards are built as nodes, so entry text is always escaped on output.
type Renderer struct {
	page      *Page
	linkLabel string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLinkLabel sets the text of each card's outbound link.
func WithLinkLabel(label string) Option {
	return func(r *Renderer) {
		r.linkLabel = label
	}
}

// NewRenderer creates a Renderer drawing into page.
func NewRenderer(page *Page, opts ...Option) *Renderer {
	r := &Renderer{page: page, linkLabel: kbcards.DefaultLinkLabel}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Page returns the surface the renderer draws into.
func (r *Renderer) Page() *Page {
	return r.page
}

// Render replaces the container's contents. A card that fails to build is
// replaced by an empty degraded article and reported after the batch.
func (r *Renderer) Render(entries []*kbcards.Entry) error {
	r.page.Clear()
	return kbcards.RenderEach(entries, func(_ int, e *kbcards.Entry) error {
		defer func() {
			if p := recover(); p != nil {
				r.page.Append(degradedNode())
				panic(p) // reported by RenderEach
			}
		}()
		r.page.Append(CardNode(kbcards.NewCard(e, r.linkLabel)))
		return nil
	})
}

// CardNode builds the article for card:
//
//	<article class="card">
//	  <h2>Title</h2>
//	  <p class="card-year">Year</p>
//	  <p class="card-description">Description</p>
//	  <ul class="card-tags"><li class="tag">tag</li></ul>
//	  <a href="Link" target="_blank" rel="noopener noreferrer">Label</a>
//	</article>
//
// The tag list is present only when card.ShowTags is set. A card without a
// safe link gets an anchor without href.
func CardNode(card kbcards.Card) *html.Node {
	article := element(atom.Article, "class", "card")
	article.AppendChild(textElement(atom.H2, card.Title))
	article.AppendChild(textElement(atom.P, card.Year, "class", "card-year"))
	article.AppendChild(textElement(atom.P, card.Description, "class", "card-description"))

	if card.ShowTags {
		list := element(atom.Ul, "class", "card-tags")
		for _, tag := range card.Tags {
			list.AppendChild(textElement(atom.Li, tag, "class", "tag"))
		}
		article.AppendChild(list)
	}

	var link *html.Node
	if card.Link != "" {
		link = textElement(atom.A, card.LinkLabel,
			"href", card.Link,
			"target", "_blank",
			"rel", "noopener noreferrer",
		)
	} else {
		link = textElement(atom.A, card.LinkLabel)
	}
	article.AppendChild(link)

	return article
}

func degradedNode() *html.Node {
	return element(atom.Article, "class", "card card-degraded")
}

// element creates an element node. attrs are key/value pairs.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textElement(a atom.Atom, text string, attrs ...string) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

// RenderFragment renders entries into a bare container and returns its
// inner HTML.
func RenderFragment(entries []*kbcards.Entry, opts ...Option) (string, error) {
	page := newFragmentPage()
	renderErr := NewRenderer(page, opts...).Render(entries)
	fragment, err := page.ContainerHTML()
	if err != nil {
		return "", err
	}
	return fragment, renderErr
}

func newFragmentPage() *Page {
	container := element(atom.Div, "class", "card-container")
	body := element(atom.Body)
	body.AppendChild(container)
	root := element(atom.Html)
	root.AppendChild(body)
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(root)
	return &Page{
		doc:       goquery.NewDocumentFromNode(doc),
		container: container,
	}
}
