// Package bubbletea implements the interactive card browser: a search
// field above a scrollable list of cards that is filtered on every
// keystroke.
package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/kbcards"
)

// Viewer exposes the output of the renderer the App draws into.
type Viewer interface {
	View() string
}

// LoadedMsg reports the end of a catalog load started by the model.
type LoadedMsg struct {
	Err error
}

// chromeHeight is the number of lines taken by the search field and the
// status line.
const chromeHeight = 2

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// Model is the bubbletea model of the browser. The App owns filtering and
// rendering; the model forwards the search field's value to App.Search and
// shows the Viewer's output.
type Model struct {
	ctx    context.Context
	app    *kbcards.App
	viewer Viewer
	keys   KeyMap

	input    textinput.Model
	viewport viewport.Model

	loading bool
	warning string
}

// New creates a browser model. The initial query, if any, is placed in the
// search field and applied once the catalog has loaded.
func New(ctx context.Context, app *kbcards.App, viewer Viewer, query string) Model {
	input := textinput.New()
	input.Prompt = "search: "
	input.Placeholder = "name or description"
	input.SetValue(query)
	input.Focus()

	return Model{
		ctx:      ctx,
		app:      app,
		viewer:   viewer,
		keys:     DefaultKeyMap,
		input:    input,
		viewport: viewport.New(80, 20),
		loading:  true,
	}
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load())
}

func (m Model) load() tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		return LoadedMsg{Err: app.Load(ctx)}
	}
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 1)
		m.refresh()
		return m, nil

	case LoadedMsg:
		m.loading = false
		m.warning = ""
		if msg.Err != nil {
			// Already logged by the App.
			m.warning = kbcards.ErrorMessage(msg.Err)
		}
		if q := m.input.Value(); q != m.app.Query() {
			m.search(q)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			if m.input.Value() == "" {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.search("")
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.load()

		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
			return m, nil

		case key.Matches(msg, m.keys.PageUp):
			m.viewport.LineUp(m.viewport.Height)
			return m, nil

		case key.Matches(msg, m.keys.PageDown):
			m.viewport.LineDown(m.viewport.Height)
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.search(after)
	}
	return m, cmd
}

// search runs the query to completion and redraws the list.
func (m *Model) search(query string) {
	m.warning = ""
	if err := m.app.Search(query); err != nil {
		m.warning = kbcards.ErrorMessage(err)
	}
	m.refresh()
	m.viewport.GotoTop()
}

func (m *Model) refresh() {
	content := m.viewer.View()
	if content == "" {
		content = emptyStyle.Render(m.emptyText())
	}
	m.viewport.SetContent(content)
}

func (m Model) emptyText() string {
	switch {
	case m.loading && m.app.State() != kbcards.StateLoaded:
		return "Loading…"
	case m.app.State() == kbcards.StateFailed:
		return "Catalog unavailable."
	default:
		return "No matching entries."
	}
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.status())
	return b.String()
}

func (m Model) status() string {
	state := m.app.State().String()
	if m.loading {
		state = "loading"
	}
	line := fmt.Sprintf("%s · %d of %d entries · C-r reload · esc quit",
		state, len(m.app.Visible()), len(m.app.Catalog().Current()))
	if m.warning != "" {
		return warningStyle.Render(m.warning)
	}
	return statusStyle.Render(line)
}

// Query returns the search field's value.
func (m Model) Query() string {
	return m.input.Value()
}
