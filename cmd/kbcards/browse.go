package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/kbcards"
	kbtea "github.com/fwojciec/kbcards/bubbletea"
	kblipgloss "github.com/fwojciec/kbcards/lipgloss"
	kbslog "github.com/fwojciec/kbcards/slog"
)

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	renderer := kblipgloss.NewRenderer(
		kblipgloss.WithWidth(c.Width),
		kblipgloss.WithLinkLabel(deps.LinkLabel),
	)
	app := kbcards.NewApp(deps.Loader, kbslog.NewLoggingRenderer(renderer, deps.Logger), deps.Logger)

	model := kbtea.New(deps.Ctx, app, renderer, c.Query)
	program := tea.NewProgram(model,
		tea.WithContext(deps.Ctx),
		tea.WithOutput(deps.Stdout),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}
