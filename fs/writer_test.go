package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/kbcards/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes rendered content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "site", "index.html")

		err := fs.WriteAtomic(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "<html></html>")
			return err
		})

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", string(content))
	})

	t.Run("keeps previous file when render fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "index.html")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		err := fs.WriteAtomic(path, func(w io.Writer) error {
			_, _ = io.WriteString(w, "partial")
			return errors.New("render failed")
		})

		require.Error(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old", string(content))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file should be removed")
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cards.md")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		err := fs.WriteAtomic(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "new")
			return err
		})

		require.NoError(t, err)
		content, _ := os.ReadFile(path)
		assert.Equal(t, "new", string(content))
	})
}
