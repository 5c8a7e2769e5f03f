package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/kbcards"
)

// Ensure LoggingRenderer implements kbcards.Renderer.
var _ kbcards.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   kbcards.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next kbcards.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the batch size.
func (r *LoggingRenderer) Render(entries []*kbcards.Entry) error {
	begin := time.Now()
	err := r.next.Render(entries)
	if err != nil {
		r.logger.Warn("render degraded", "cards", len(entries), "err", err)
		return err
	}
	r.logger.Debug("render", "cards", len(entries), "duration", time.Since(begin))
	return nil
}
