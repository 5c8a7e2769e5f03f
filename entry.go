package kbcards

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/jsonc"
)

// Entry represents one knowledge-base item.
//
// Older catalogs have no tags and spell the year as "year_creation"; both
// shapes decode into the same Entry. A nil Tags slice means the entry
// carries no tags field at all, which is distinct from an empty list.
type Entry struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Year        string   `json:"year,omitempty"`
	Link        string   `json:"link"`
	Tags        []string `json:"tags,omitempty"`
}

// HasTags reports whether the entry carries a tags field.
func (e *Entry) HasTags() bool {
	return e != nil && e.Tags != nil
}

// Validate returns an error if a required field is missing.
// Rendering never depends on it; it exists for diagnostics.
func (e *Entry) Validate() error {
	if e == nil {
		return Errorf(EINVALID, "entry required")
	}
	if e.Name == "" {
		return Errorf(EINVALID, "entry name required")
	}
	if e.Description == "" {
		return Errorf(EINVALID, "entry %q description required", e.Name)
	}
	if e.Link == "" {
		return Errorf(EINVALID, "entry %q link required", e.Name)
	}
	return nil
}

// Matches reports whether the lower-cased name or description contains
// term. The term must already be normalized (trimmed, lower-cased).
func (e *Entry) Matches(term string) bool {
	if e == nil {
		return false
	}
	return strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(e.Description), term)
}

// UnmarshalJSON decodes an entry object leniently: scalar fields accept
// strings or numbers, and a field of the wrong type decodes as blank
// instead of rejecting the whole catalog.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*e = Entry{
		Name:        scalarText(fields["name"]),
		Description: scalarText(fields["description"]),
		Link:        scalarText(fields["link"]),
	}

	// "year" wins when both spellings are present.
	e.Year = scalarText(fields["year"])
	if e.Year == "" {
		e.Year = scalarText(fields["year_creation"])
	}

	if raw, ok := fields["tags"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil && items != nil {
			e.Tags = make([]string, 0, len(items))
			for _, item := range items {
				if tag := scalarText(item); tag != "" {
					e.Tags = append(e.Tags, tag)
				}
			}
		}
	}

	return nil
}

// scalarText returns the textual form of a JSON string or number.
// Anything else yields "".
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// DecodeEntries parses a catalog document: a JSON array of entry objects.
// Comments and trailing commas are tolerated so hand-edited fallback files
// stay loadable. Any other shape is reported as EPARSE.
func DecodeEntries(data []byte) ([]*Entry, error) {
	stripped := jsonc.ToJSON(data)

	var items []json.RawMessage
	if err := json.Unmarshal(stripped, &items); err != nil {
		return nil, WrapError(EPARSE, err, "catalog is not a JSON array")
	}
	if items == nil {
		return nil, Errorf(EPARSE, "catalog is null")
	}

	entries := make([]*Entry, 0, len(items))
	for i, item := range items {
		if trimmed := bytes.TrimSpace(item); len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, Errorf(EPARSE, "catalog entry %d is not an object", i)
		}
		var entry Entry
		if err := json.Unmarshal(item, &entry); err != nil {
			return nil, WrapError(EPARSE, err, "catalog entry %d is malformed", i)
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}
