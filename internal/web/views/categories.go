package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func CategoriesPage(view CategoriesView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="categories">`)
		h.raw("<h1>Categories</h1>")
		if len(view.Categories) == 0 {
			h.raw(`<p class="categories-empty">No categories yet.</p>`)
		} else {
			h.raw(`<ul class="category-list">`)
			for _, category := range view.Categories {
				h.raw("<li><a")
				h.attr("href", "/posts/category/"+category.Slug)
				h.raw(">")
				h.text(category.Name)
				h.raw("</a></li>")
			}
			h.raw("</ul>")
		}
		h.raw("</section>")
		return h.err
	})
}

func CategoryPage(view CategoryView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="category">`)
		h.raw("<h1>")
		h.text(view.Category.Name)
		h.raw("</h1>")
		h.component(ctx, postList(view.Category.RecentPosts))
		h.raw("</section>")
		return h.err
	})
}
