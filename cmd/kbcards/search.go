package main

import (
	"fmt"

	"github.com/fwojciec/kbcards"
	kblipgloss "github.com/fwojciec/kbcards/lipgloss"
	kbslog "github.com/fwojciec/kbcards/slog"
	"github.com/muesli/termenv"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	// Hyperlinks are only emitted to terminals; pipes get plain URLs.
	hyperlinks := !c.NoHyperlinks && termenv.NewOutput(deps.Stdout).ColorProfile() != termenv.Ascii

	renderer := kblipgloss.NewRenderer(
		kblipgloss.WithWriter(deps.Stdout),
		kblipgloss.WithWidth(c.Width),
		kblipgloss.WithLinkLabel(deps.LinkLabel),
		kblipgloss.WithHyperlinks(hyperlinks),
	)
	app := kbcards.NewApp(deps.Loader, kbslog.NewLoggingRenderer(renderer, deps.Logger), deps.Logger)

	// Nothing is written for the empty pre-load render, so the cards are
	// printed exactly once.
	_ = app.Search(c.Query)
	if err := app.Load(deps.Ctx); err != nil && kbcards.ErrorCode(err) == kbcards.ELOAD {
		fmt.Fprintln(deps.Stderr, "Catalog unavailable.")
		return nil
	}

	if len(app.Visible()) == 0 {
		fmt.Fprintln(deps.Stdout, "No matching entries.")
	}
	return nil
}
