package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kbcards"
)

// Ensure LoggingLoader implements kbcards.Loader.
var _ kbcards.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with one diagnostic record per outcome.
type LoggingLoader struct {
	next   kbcards.Loader
	source string
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader. source names the strategy
// in log records.
func NewLoggingLoader(next kbcards.Loader, source string, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, source: source, logger: logger}
}

// Load logs the attempt, delegates, then logs success or failure.
func (l *LoggingLoader) Load(ctx context.Context) (entries []*kbcards.Entry, err error) {
	l.logger.Info("load attempt", "source", l.source)

	defer func(begin time.Time) {
		if err != nil {
			l.logger.Warn("load failed",
				"source", l.source,
				"code", kbcards.ErrorCode(err),
				"err", kbcards.ErrorMessage(err),
				"duration", time.Since(begin),
			)
			return
		}
		l.logger.Info("load succeeded",
			"source", l.source,
			"entries", len(entries),
			"duration", time.Since(begin),
		)
	}(time.Now())

	return l.next.Load(ctx)
}

// LoggingStrategies wraps every strategy's loader with a LoggingLoader.
func LoggingStrategies(logger *slog.Logger, strategies ...kbcards.Strategy) []kbcards.Strategy {
	wrapped := make([]kbcards.Strategy, 0, len(strategies))
	for _, s := range strategies {
		wrapped = append(wrapped, kbcards.Strategy{
			Name:   s.Name,
			Loader: NewLoggingLoader(s.Loader, s.Name, logger),
		})
	}
	return wrapped
}
