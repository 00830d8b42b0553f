package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func NotFoundPage(view NotFoundView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="not-found">`)
		h.raw("<h1>Page not found</h1>")
		if view.Path != "" {
			h.raw(`<p class="not-found-path">Nothing lives at `)
			h.raw("<code>")
			h.text(view.Path)
			h.raw("</code>.</p>")
		}
		h.raw(`<p><a href="/">Back to the front page</a></p>`)
		h.raw("</section>")
		return h.err
	})
}
