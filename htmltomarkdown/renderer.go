// Package htmltomarkdown renders cards as Markdown by converting the HTML
// card fragment with html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/kbcards"
	"github.com/fwojciec/kbcards/goquery"
)

// Ensure Renderer implements kbcards.Renderer at compile time.
var _ kbcards.Renderer = (*Renderer)(nil)

// Renderer keeps the Markdown document for the last rendered batch.
type Renderer struct {
	convert   func(html string) (string, error)
	linkLabel string
	markdown  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLinkLabel sets the text of each card's outbound link.
func WithLinkLabel(label string) Option {
	return func(r *Renderer) {
		r.linkLabel = label
	}
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...Option) *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	r := &Renderer{
		convert: func(html string) (string, error) {
			return conv.ConvertString(html)
		},
		linkLabel: kbcards.DefaultLinkLabel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render replaces the Markdown document with one section per entry.
// Degraded cards are converted like any other; their error is returned
// after the document has been replaced. If conversion fails the document
// is left empty.
func (r *Renderer) Render(entries []*kbcards.Entry) error {
	fragment, renderErr := goquery.RenderFragment(entries, goquery.WithLinkLabel(r.linkLabel))
	if strings.TrimSpace(fragment) == "" {
		r.markdown = ""
		return renderErr
	}

	md, err := r.convert(fragment)
	if err != nil {
		r.markdown = ""
		return kbcards.WrapError(kbcards.EINTERNAL, err, "failed to convert cards to markdown")
	}
	r.markdown = md
	return renderErr
}

// Markdown returns the document produced by the last Render call.
func (r *Renderer) Markdown() string {
	return r.markdown
}
