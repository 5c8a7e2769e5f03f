// Package lipgloss renders cards for the terminal as bordered boxes.
package lipgloss

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/kbcards"
)

// DefaultWidth is the card width, in cells, used when none is configured.
const DefaultWidth = 72

// Ensure Renderer implements kbcards.Renderer at compile time.
var _ kbcards.Renderer = (*Renderer)(nil)

// Styles holds the styles used to draw a card.
type Styles struct {
	Card        lipgloss.Style
	Degraded    lipgloss.Style
	Title       lipgloss.Style
	Year        lipgloss.Style
	Description lipgloss.Style
	Tag         lipgloss.Style
	Link        lipgloss.Style
}

// DefaultStyles returns the styles used by NewRenderer.
func DefaultStyles() Styles {
	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Degraded: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(0, 1),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Year:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Tag:         lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		Link:        lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Underline(true),
	}
}

// Renderer draws each entry as a card and keeps the joined result as its
// view. If a writer is configured, every view is also written to it.
//
// Render and View may be called from different goroutines.
type Renderer struct {
	out        io.Writer
	styles     Styles
	width      int
	linkLabel  string
	hyperlinks bool

	mu   sync.Mutex
	view string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWriter makes Render write every view to w.
func WithWriter(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

// WithWidth sets the card width in cells.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithLinkLabel sets the text of each card's outbound link.
func WithLinkLabel(label string) Option {
	return func(r *Renderer) {
		r.linkLabel = label
	}
}

// WithHyperlinks toggles OSC 8 hyperlinks. When disabled, the URL is
// printed after the label.
func WithHyperlinks(enabled bool) Option {
	return func(r *Renderer) {
		r.hyperlinks = enabled
	}
}

// WithStyles replaces the default styles.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		styles:     DefaultStyles(),
		width:      DefaultWidth,
		linkLabel:  kbcards.DefaultLinkLabel,
		hyperlinks: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render replaces the view with one card per entry.
func (r *Renderer) Render(entries []*kbcards.Entry) error {
	cards := make([]string, 0, len(entries))
	renderErr := kbcards.RenderEach(entries, func(_ int, e *kbcards.Entry) error {
		defer func() {
			if p := recover(); p != nil {
				cards = append(cards, r.degraded())
				panic(p)
			}
		}()
		cards = append(cards, r.CardView(kbcards.NewCard(e, r.linkLabel)))
		return nil
	})

	view := strings.Join(cards, "\n")

	r.mu.Lock()
	r.view = view
	r.mu.Unlock()

	if r.out != nil && view != "" {
		if _, err := fmt.Fprintln(r.out, view); err != nil {
			return kbcards.WrapError(kbcards.EINTERNAL, err, "failed to write cards")
		}
	}
	return renderErr
}

// View returns the output of the last Render call.
func (r *Renderer) View() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// Width returns the card width in cells.
func (r *Renderer) Width() int {
	return r.width
}

// CardView draws a single card.
func (r *Renderer) CardView(card kbcards.Card) string {
	s := r.styles
	lines := []string{s.Title.Render(card.Title)}
	if card.Year != "" {
		lines = append(lines, s.Year.Render(card.Year))
	}
	if card.Description != "" {
		lines = append(lines, s.Description.Render(card.Description))
	}
	if card.ShowTags && len(card.Tags) > 0 {
		tags := make([]string, len(card.Tags))
		for i, tag := range card.Tags {
			tags[i] = s.Tag.Render("#" + tag)
		}
		lines = append(lines, strings.Join(tags, " "))
	}
	lines = append(lines, r.link(card))

	return s.Card.Width(r.width).Render(strings.Join(lines, "\n"))
}

func (r *Renderer) link(card kbcards.Card) string {
	label := r.styles.Link.Render(card.LinkLabel)
	switch {
	case card.Link == "":
		return label
	case r.hyperlinks:
		return ansi.SetHyperlink(card.Link) + label + ansi.ResetHyperlink()
	default:
		return label + " " + card.Link
	}
}

func (r *Renderer) degraded() string {
	return r.styles.Degraded.Width(r.width).Render("(card unavailable)")
}
