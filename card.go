package kbcards

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultLinkLabel is the text of a card's outbound link.
const DefaultLinkLabel = "Learn more"

// Card is the display unit built from one entry. Backends turn cards into
// concrete nodes; they never interpolate entry fields into markup.
type Card struct {
	Title       string
	Year        string
	Description string

	// Tags are shown only when ShowTags is set, i.e. when the entry
	// carried a tags field.
	Tags     []string
	ShowTags bool

	// Link is empty when the entry's link is missing or not an
	// http, https or mailto URL.
	Link      string
	LinkLabel string
}

// NewCard builds the card for e. It never fails: a nil entry or a missing
// field produces blank values.
func NewCard(e *Entry, linkLabel string) Card {
	if linkLabel == "" {
		linkLabel = DefaultLinkLabel
	}
	if e == nil {
		return Card{LinkLabel: linkLabel}
	}
	return Card{
		Title:       e.Name,
		Year:        e.Year,
		Description: e.Description,
		Tags:        e.Tags,
		ShowTags:    e.HasTags(),
		Link:        SafeLink(e.Link),
		LinkLabel:   linkLabel,
	}
}

// SafeLink returns raw if it is an absolute http, https or mailto URL,
// and "" otherwise.
func SafeLink(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return ""
		}
		return raw
	case "mailto":
		return raw
	default:
		return ""
	}
}

// Renderer replaces the content of a display surface with one card per
// entry, in order.
type Renderer interface {
	Render(entries []*Entry) error
}

// RenderEach calls fn for every entry inside its own recover boundary, so
// a panic while building one card does not abort the rest of the batch.
// Panics and errors are collected and returned after every entry has been
// visited.
func RenderEach(entries []*Entry, fn func(i int, e *Entry) error) error {
	var errs []error
	for i, e := range entries {
		if err := renderOne(i, e, fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func renderOne(i int, e *Entry, fn func(int, *Entry) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Errorf(EINTERNAL, "render card %d: %v", i, r)
		}
	}()
	if err := fn(i, e); err != nil {
		return fmt.Errorf("render card %d: %w", i, err)
	}
	return nil
}
