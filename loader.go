package kbcards

import (
	"context"
	"strings"
)

// Strategy names used by the standard two-source chain.
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
)

// Loader retrieves a catalog from a single source.
// Implementations report transport failures as ENETWORK, non-OK responses
// as EHTTPSTATUS and malformed bodies as EPARSE.
type Loader interface {
	Load(ctx context.Context) ([]*Entry, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) ([]*Entry, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) ([]*Entry, error) {
	return f(ctx)
}

// CatalogLoader produces a complete catalog snapshot.
type CatalogLoader interface {
	// LoadCatalog returns a snapshot from the first source that succeeds.
	// Returns a *LoadError if every source fails.
	LoadCatalog(ctx context.Context) (*Snapshot, error)
}

// Strategy is a named Loader in a Chain.
type Strategy struct {
	Name   string
	Loader Loader
}

// Attempt records one failed strategy.
type Attempt struct {
	Name string
	Err  error
}

// LoadError is the terminal error returned when every strategy failed.
type LoadError struct {
	Attempts []Attempt
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if len(e.Attempts) == 0 {
		return "catalog unavailable: no sources configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Name+": "+ErrorMessage(a.Err))
	}
	return "catalog unavailable: " + strings.Join(parts, "; ")
}

// Unwrap exposes each attempt's error to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// Ensure Chain implements CatalogLoader at compile time.
var _ CatalogLoader = (*Chain)(nil)

// Chain tries strategies in order and stops at the first success.
// Strategies run strictly one after another: the next one starts only
// after the previous one has failed. No partial results are merged.
type Chain struct {
	strategies []Strategy
}

// NewChain creates a Chain over the given strategies.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Strategies returns the configured strategies in order.
func (c *Chain) Strategies() []Strategy {
	return append([]Strategy(nil), c.strategies...)
}

// LoadCatalog runs the chain.
func (c *Chain) LoadCatalog(ctx context.Context) (*Snapshot, error) {
	loadErr := &LoadError{}

	for _, s := range c.strategies {
		entries, err := s.Loader.Load(ctx)
		if err == nil {
			return NewSnapshot(entries, s.Name), nil
		}
		loadErr.Attempts = append(loadErr.Attempts, Attempt{Name: s.Name, Err: err})

		// A cancelled load is abandoned, not failed over.
		if ctx.Err() != nil {
			return nil, loadErr
		}
	}

	return nil, loadErr
}
