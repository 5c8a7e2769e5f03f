package slog

import (
	"log/slog"
	"runtime/debug"

	"github.com/fwojciec/kbcards"
)

// Guard runs fn and logs any panic escaping it. It is a last-resort
// diagnostic hook: the panic is reported as an EINTERNAL error so the
// process can exit cleanly, nothing is retried.
func Guard(logger *slog.Logger, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("uncaught panic",
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = kbcards.Errorf(kbcards.EINTERNAL, "uncaught panic: %v", r)
		}
	}()
	return fn()
}
