package mock

import "github.com/fwojciec/kbcards"

var _ kbcards.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of kbcards.Renderer.
type Renderer struct {
	RenderFn func(entries []*kbcards.Entry) error
}

func (r *Renderer) Render(entries []*kbcards.Entry) error {
	return r.RenderFn(entries)
}
