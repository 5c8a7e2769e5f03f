package htmltomarkdown

// SetConvertFunc replaces the HTML to Markdown conversion step.
func SetConvertFunc(r *Renderer, fn func(html string) (string, error)) {
	r.convert = fn
}
