package lipgloss_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/kbcards"
	kblipgloss "github.com/fwojciec/kbcards/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Renderer implements kbcards.Renderer at compile time.
var _ kbcards.Renderer = (*kblipgloss.Renderer)(nil)

func entries() []*kbcards.Entry {
	return []*kbcards.Entry{
		{Name: "Git", Description: "version control", Year: "2005", Link: "https://git-scm.com", Tags: []string{"vcs"}},
		{Name: "Python", Description: "language", Year: "1991", Link: "https://python.org"},
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("draws one card per entry in order", func(t *testing.T) {
		t.Parallel()

		r := kblipgloss.NewRenderer()
		require.NoError(t, r.Render(entries()))

		plain := ansi.Strip(r.View())
		assert.Contains(t, plain, "Git")
		assert.Contains(t, plain, "2005")
		assert.Contains(t, plain, "version control")
		assert.Less(t, strings.Index(plain, "Git"), strings.Index(plain, "Python"))
		assert.Equal(t, 2, strings.Count(plain, "╭"))
	})

	t.Run("tags only on tagged entries", func(t *testing.T) {
		t.Parallel()

		r := kblipgloss.NewRenderer()
		require.NoError(t, r.Render(entries()))

		plain := ansi.Strip(r.View())
		assert.Equal(t, 1, strings.Count(plain, "#"))
		assert.Contains(t, plain, "#vcs")
	})

	t.Run("link is an OSC 8 hyperlink", func(t *testing.T) {
		t.Parallel()

		r := kblipgloss.NewRenderer()
		require.NoError(t, r.Render(entries()[:1]))

		view := r.View()
		assert.Contains(t, view, "\x1b]8;")
		assert.Contains(t, view, "https://git-scm.com")
		assert.Contains(t, ansi.Strip(view), kbcards.DefaultLinkLabel)
	})

	t.Run("prints URL when hyperlinks are disabled", func(t *testing.T) {
		t.Parallel()

		r := kblipgloss.NewRenderer(kblipgloss.WithHyperlinks(false), kblipgloss.WithLinkLabel("Saiba mais"))
		require.NoError(t, r.Render(entries()[:1]))

		view := r.View()
		assert.NotContains(t, view, "\x1b]8;")
		assert.Contains(t, ansi.Strip(view), "Saiba mais https://git-scm.com")
	})

	t.Run("unsafe link is not emitted", func(t *testing.T) {
		t.Parallel()

		r := kblipgloss.NewRenderer()
		require.NoError(t, r.Render([]*kbcards.Entry{{Name: "X", Link: "javascript:alert(1)"}}))

		assert.NotContains(t, r.View(), "javascript:")
	})

	t.Run("writes view to writer", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := kblipgloss.NewRenderer(kblipgloss.WithWriter(&buf))
		require.NoError(t, r.Render(entries()))

		assert.Equal(t, r.View()+"\n", buf.String())
	})

	t.Run("empty batch writes nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := kblipgloss.NewRenderer(kblipgloss.WithWriter(&buf))
		require.NoError(t, r.Render([]*kbcards.Entry{}))

		assert.Empty(t, r.View())
		assert.Empty(t, buf.String())
	})

	t.Run("respects width", func(t *testing.T) {
		t.Parallel()

		r := kblipgloss.NewRenderer(kblipgloss.WithWidth(30))
		require.NoError(t, r.Render(entries()[:1]))

		for _, line := range strings.Split(r.View(), "\n") {
			assert.LessOrEqual(t, ansi.StringWidth(line), 32)
		}
	})

	t.Run("nil entry renders a blank card", func(t *testing.T) {
		t.Parallel()

		r := kblipgloss.NewRenderer()
		require.NoError(t, r.Render([]*kbcards.Entry{nil, {Name: "Go"}}))

		assert.Equal(t, 2, strings.Count(ansi.Strip(r.View()), "╭"))
	})
}

func TestRenderer_View_Concurrent(t *testing.T) {
	t.Parallel()

	r := kblipgloss.NewRenderer()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Render(entries())
		}()
		go func() {
			defer wg.Done()
			_ = r.View()
		}()
	}
	wg.Wait()

	assert.Contains(t, ansi.Strip(r.View()), "Python")
}
