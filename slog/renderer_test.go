package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/kbcards"
	"github.com/fwojciec/kbcards/mock"
	kbslog "github.com/fwojciec/kbcards/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("logs card count at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		var rendered int
		inner := &mock.Renderer{
			RenderFn: func(entries []*kbcards.Entry) error {
				rendered = len(entries)
				return nil
			},
		}

		err := kbslog.NewLoggingRenderer(inner, logger).Render([]*kbcards.Entry{{Name: "Git"}})

		require.NoError(t, err)
		assert.Equal(t, 1, rendered)
		assert.Contains(t, buf.String(), "msg=render cards=1")
	})

	t.Run("logs degraded render", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Renderer{
			RenderFn: func([]*kbcards.Entry) error { return errors.New("card 3 broken") },
		}

		err := kbslog.NewLoggingRenderer(inner, logger).Render(nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "render degraded")
		assert.Contains(t, buf.String(), `err="card 3 broken"`)
	})
}
