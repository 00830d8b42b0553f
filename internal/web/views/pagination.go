package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func paginationNav(p Pagination) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if !p.HasPrev && !p.HasNext {
			return nil
		}

		h := newHTMLWriter(w)
		h.raw(`<nav class="pagination">`)
		if p.HasPrev {
			h.raw(`<a class="pagination-prev" rel="prev"`)
			h.attr("href", p.PrevURL)
			h.raw(">Previous</a>")
		}
		if p.HasNext {
			h.raw(`<a class="pagination-next" rel="next"`)
			h.attr("href", p.NextURL)
			h.raw(">Next</a>")
		}
		h.raw("</nav>")

		return h.err
	})
}
