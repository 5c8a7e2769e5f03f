// Package fs provides file-based catalog loading and atomic output for
// rendered pages.
package fs

import (
	"context"
	"errors"
	"os"

	"github.com/fwojciec/kbcards"
)

// Ensure Loader implements kbcards.Loader at compile time.
var _ kbcards.Loader = (*Loader)(nil)

// Loader reads a catalog document co-located with the page.
type Loader struct {
	path string
}

// NewLoader creates a Loader for the file at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the catalog file. A missing or unreadable file
// is reported as ENETWORK, the same way a failed fetch of a static asset
// would be.
func (l *Loader) Load(ctx context.Context) ([]*kbcards.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, kbcards.WrapError(kbcards.ENETWORK, err, "catalog file %s not found", l.path)
	} else if err != nil {
		return nil, kbcards.WrapError(kbcards.ENETWORK, err, "read %s", l.path)
	}

	entries, err := kbcards.DecodeEntries(data)
	if err != nil {
		return nil, kbcards.WrapError(kbcards.EPARSE, err, "decode %s", l.path)
	}

	return entries, nil
}
