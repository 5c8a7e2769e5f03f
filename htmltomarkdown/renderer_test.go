package htmltomarkdown_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/kbcards"
	"github.com/fwojciec/kbcards/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Renderer implements kbcards.Renderer at compile time.
var _ kbcards.Renderer = (*htmltomarkdown.Renderer)(nil)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders card as heading, text and link", func(t *testing.T) {
		t.Parallel()

		r := htmltomarkdown.NewRenderer()
		err := r.Render([]*kbcards.Entry{
			{Name: "Git", Description: "version control", Year: "2005", Link: "https://git-scm.com", Tags: []string{"vcs"}},
		})

		require.NoError(t, err)
		md := r.Markdown()
		assert.Contains(t, md, "## Git")
		assert.Contains(t, md, "2005")
		assert.Contains(t, md, "version control")
		assert.Contains(t, md, "- vcs")
		assert.Contains(t, md, "[Learn more](https://git-scm.com)")
	})

	t.Run("keeps entry order", func(t *testing.T) {
		t.Parallel()

		r := htmltomarkdown.NewRenderer()
		require.NoError(t, r.Render([]*kbcards.Entry{{Name: "Docker"}, {Name: "Git"}}))

		md := r.Markdown()
		assert.Less(t, strings.Index(md, "## Docker"), strings.Index(md, "## Git"))
	})

	t.Run("omits tag list for untagged entries", func(t *testing.T) {
		t.Parallel()

		r := htmltomarkdown.NewRenderer()
		require.NoError(t, r.Render([]*kbcards.Entry{{Name: "Python", Description: "language"}}))

		assert.NotContains(t, r.Markdown(), "\n- ")
	})

	t.Run("uses configured link label", func(t *testing.T) {
		t.Parallel()

		r := htmltomarkdown.NewRenderer(htmltomarkdown.WithLinkLabel("Saiba mais"))
		require.NoError(t, r.Render([]*kbcards.Entry{{Name: "Go", Link: "https://go.dev"}}))

		assert.Contains(t, r.Markdown(), "[Saiba mais](https://go.dev)")
	})

	t.Run("empty batch yields empty document", func(t *testing.T) {
		t.Parallel()

		r := htmltomarkdown.NewRenderer()
		require.NoError(t, r.Render([]*kbcards.Entry{{Name: "Go"}}))
		require.NoError(t, r.Render([]*kbcards.Entry{}))

		assert.Empty(t, r.Markdown())
	})

	t.Run("failed conversion clears previous document", func(t *testing.T) {
		t.Parallel()

		r := htmltomarkdown.NewRenderer()
		require.NoError(t, r.Render([]*kbcards.Entry{{Name: "Git"}}))
		require.NotEmpty(t, r.Markdown())

		htmltomarkdown.SetConvertFunc(r, func(string) (string, error) {
			return "", errors.New("boom")
		})
		err := r.Render([]*kbcards.Entry{{Name: "Docker"}})

		require.Error(t, err)
		assert.Equal(t, kbcards.EINTERNAL, kbcards.ErrorCode(err))
		assert.Empty(t, r.Markdown())
	})
}
