package kbcards

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is one complete, immutable catalog produced by a single
// successful load. It is never modified after construction; a reload
// builds a new Snapshot and replaces the old one wholesale.
type Snapshot struct {
	Entries     []*Entry
	Source      string // name of the strategy that produced it
	Fingerprint uint64
	LoadedAt    time.Time
}

// NewSnapshot builds a snapshot and computes its content fingerprint.
func NewSnapshot(entries []*Entry, source string) *Snapshot {
	if entries == nil {
		entries = []*Entry{}
	}
	return &Snapshot{
		Entries:     entries,
		Source:      source,
		Fingerprint: Fingerprint(entries),
		LoadedAt:    time.Now(),
	}
}

// Fingerprint returns an xxhash64 of the entries' canonical JSON encoding.
// Two loads yielding the same catalog have the same fingerprint.
func Fingerprint(entries []*Entry) uint64 {
	digest := xxhash.New()
	enc := json.NewEncoder(digest)
	for _, e := range entries {
		// Encoding plain strings into a hash cannot fail.
		_ = enc.Encode(e)
	}
	return digest.Sum64()
}

// Catalog holds the current snapshot. The zero value is an empty catalog
// ready to use.
type Catalog struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// Replace swaps in snap as the current snapshot. A nil snapshot empties
// the catalog.
func (c *Catalog) Replace(snap *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
}

// Current returns the entries of the current snapshot, or an empty slice
// before the first successful load. Callers must not modify the slice.
func (c *Catalog) Current() []*Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return []*Entry{}
	}
	return c.snap.Entries
}

// Snapshot returns the current snapshot, or nil if nothing has loaded.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Loaded reports whether a snapshot is held.
func (c *Catalog) Loaded() bool {
	return c.Snapshot() != nil
}
