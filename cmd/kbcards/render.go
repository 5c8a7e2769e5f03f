package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/kbcards"
	kbfs "github.com/fwojciec/kbcards/fs"
	"github.com/fwojciec/kbcards/goquery"
	"github.com/fwojciec/kbcards/htmltomarkdown"
	kbslog "github.com/fwojciec/kbcards/slog"
)

// Run executes the render command. A catalog that cannot be loaded is not
// an error: the output simply has no cards.
func (c *RenderCmd) Run(deps *Dependencies) error {
	renderer, write, err := c.surface(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbcards.ErrorMessage(err))
		return err
	}

	app := kbcards.NewApp(deps.Loader, kbslog.NewLoggingRenderer(renderer, deps.Logger), deps.Logger)

	// The query is recorded first so the load renders the filtered list
	// once. Load and render failures are logged by the App and renderer.
	_ = app.Search(c.Query)
	_ = app.Load(deps.Ctx)

	if c.Out == "" {
		return write(deps.Stdout)
	}
	if err := kbfs.WriteAtomic(c.Out, write); err != nil {
		err = kbcards.WrapError(kbcards.EINTERNAL, err, "failed to write %s", c.Out)
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbcards.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stderr, "Wrote %d cards to %s\n", len(app.Visible()), c.Out)
	return nil
}

// surface returns the renderer for the selected format and a function that
// writes its output.
func (c *RenderCmd) surface(deps *Dependencies) (kbcards.Renderer, func(io.Writer) error, error) {
	if c.Format == "markdown" {
		r := htmltomarkdown.NewRenderer(htmltomarkdown.WithLinkLabel(deps.LinkLabel))
		return r, func(w io.Writer) error {
			_, err := io.WriteString(w, r.Markdown())
			return err
		}, nil
	}

	page, err := c.page()
	if err != nil {
		return nil, nil, err
	}
	page.SetQuery(c.Query)
	return goquery.NewRenderer(page, goquery.WithLinkLabel(deps.LinkLabel)), page.Render, nil
}

func (c *RenderCmd) page() (*goquery.Page, error) {
	if c.Page == "" {
		return goquery.NewDefaultPage(), nil
	}
	f, err := os.Open(c.Page)
	if err != nil {
		return nil, kbcards.WrapError(kbcards.EINVALID, err, "failed to open page shell %s", c.Page)
	}
	defer f.Close()
	return goquery.NewPage(f)
}
