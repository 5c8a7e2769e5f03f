package mock

import (
	"context"

	"github.com/fwojciec/kbcards"
)

var _ kbcards.Loader = (*Loader)(nil)

// Loader is a mock implementation of kbcards.Loader.
type Loader struct {
	LoadFn func(ctx context.Context) ([]*kbcards.Entry, error)
}

func (l *Loader) Load(ctx context.Context) ([]*kbcards.Entry, error) {
	return l.LoadFn(ctx)
}

var _ kbcards.CatalogLoader = (*CatalogLoader)(nil)

// CatalogLoader is a mock implementation of kbcards.CatalogLoader.
type CatalogLoader struct {
	LoadCatalogFn func(ctx context.Context) (*kbcards.Snapshot, error)
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) (*kbcards.Snapshot, error) {
	return l.LoadCatalogFn(ctx)
}
