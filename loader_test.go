package kbcards_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/kbcards"
	"github.com/fwojciec/kbcards/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLoader returns a mock loader that records how often it was called.
func countingLoader(calls *int, entries []*kbcards.Entry, err error) *mock.Loader {
	return &mock.Loader{
		LoadFn: func(context.Context) ([]*kbcards.Entry, error) {
			*calls++
			return entries, err
		},
	}
}

func TestChain_LoadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("primary success skips fallback", func(t *testing.T) {
		t.Parallel()

		var primaryCalls, fallbackCalls int
		chain := kbcards.NewChain(
			kbcards.Strategy{Name: kbcards.SourcePrimary, Loader: countingLoader(&primaryCalls, sampleCatalog(), nil)},
			kbcards.Strategy{Name: kbcards.SourceFallback, Loader: countingLoader(&fallbackCalls, nil, nil)},
		)

		snap, err := chain.LoadCatalog(context.Background())

		require.NoError(t, err)
		assert.Equal(t, kbcards.SourcePrimary, snap.Source)
		assert.Len(t, snap.Entries, 2)
		assert.Equal(t, 1, primaryCalls)
		assert.Equal(t, 0, fallbackCalls)
	})

	t.Run("primary failure tries fallback exactly once", func(t *testing.T) {
		t.Parallel()

		var primaryCalls, fallbackCalls int
		chain := kbcards.NewChain(
			kbcards.Strategy{Name: kbcards.SourcePrimary, Loader: countingLoader(&primaryCalls, nil, kbcards.Errorf(kbcards.EHTTPSTATUS, "HTTP 500"))},
			kbcards.Strategy{Name: kbcards.SourceFallback, Loader: countingLoader(&fallbackCalls, []*kbcards.Entry{{Name: "Go"}}, nil)},
		)

		snap, err := chain.LoadCatalog(context.Background())

		require.NoError(t, err)
		assert.Equal(t, kbcards.SourceFallback, snap.Source)
		assert.Equal(t, []string{"Go"}, names(snap.Entries))
		assert.Equal(t, 1, primaryCalls)
		assert.Equal(t, 1, fallbackCalls)
	})

	t.Run("both failing yields one load error with every attempt", func(t *testing.T) {
		t.Parallel()

		primaryErr := kbcards.Errorf(kbcards.ENETWORK, "connection refused")
		fallbackErr := kbcards.Errorf(kbcards.EPARSE, "catalog is not a JSON array")
		var primaryCalls, fallbackCalls int
		chain := kbcards.NewChain(
			kbcards.Strategy{Name: kbcards.SourcePrimary, Loader: countingLoader(&primaryCalls, nil, primaryErr)},
			kbcards.Strategy{Name: kbcards.SourceFallback, Loader: countingLoader(&fallbackCalls, nil, fallbackErr)},
		)

		snap, err := chain.LoadCatalog(context.Background())

		require.Error(t, err)
		assert.Nil(t, snap)
		assert.Equal(t, 1, primaryCalls)
		assert.Equal(t, 1, fallbackCalls)

		var loadErr *kbcards.LoadError
		require.ErrorAs(t, err, &loadErr)
		require.Len(t, loadErr.Attempts, 2)
		assert.Equal(t, kbcards.SourcePrimary, loadErr.Attempts[0].Name)
		assert.Equal(t, kbcards.SourceFallback, loadErr.Attempts[1].Name)
		assert.ErrorIs(t, err, primaryErr)
		assert.ErrorIs(t, err, fallbackErr)
		assert.Equal(t, kbcards.ELOAD, kbcards.ErrorCode(err))
		assert.Equal(t,
			"catalog unavailable: primary: connection refused; fallback: catalog is not a JSON array",
			kbcards.ErrorMessage(err))
	})

	t.Run("fallback starts after primary returns", func(t *testing.T) {
		t.Parallel()

		var order []string
		chain := kbcards.NewChain(
			kbcards.Strategy{Name: "a", Loader: kbcards.LoaderFunc(func(context.Context) ([]*kbcards.Entry, error) {
				order = append(order, "a:start", "a:end")
				return nil, errors.New("a failed")
			})},
			kbcards.Strategy{Name: "b", Loader: kbcards.LoaderFunc(func(context.Context) ([]*kbcards.Entry, error) {
				order = append(order, "b:start", "b:end")
				return []*kbcards.Entry{}, nil
			})},
		)

		_, err := chain.LoadCatalog(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"a:start", "a:end", "b:start", "b:end"}, order)
	})

	t.Run("cancelled context stops the chain", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var fallbackCalls int
		chain := kbcards.NewChain(
			kbcards.Strategy{Name: kbcards.SourcePrimary, Loader: kbcards.LoaderFunc(func(ctx context.Context) ([]*kbcards.Entry, error) {
				cancel()
				return nil, ctx.Err()
			})},
			kbcards.Strategy{Name: kbcards.SourceFallback, Loader: countingLoader(&fallbackCalls, nil, nil)},
		)

		_, err := chain.LoadCatalog(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, fallbackCalls)
	})

	t.Run("empty chain fails", func(t *testing.T) {
		t.Parallel()

		_, err := kbcards.NewChain().LoadCatalog(context.Background())

		require.Error(t, err)
		assert.Equal(t, "catalog unavailable: no sources configured", err.Error())
	})
}
