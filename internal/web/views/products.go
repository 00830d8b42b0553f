package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

func ProductsPage(view ProductsView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="products">`)
		h.raw("<h1>Products</h1>")
		if len(view.Products) == 0 {
			h.raw(`<p class="products-empty">No products yet.</p>`)
		} else {
			h.raw(`<ul class="product-list">`)
			for _, product := range view.Products {
				h.raw(`<li class="product-list-item"><a`)
				h.attr("href", "/products/"+product.Slug)
				h.raw(">")
				h.text(product.Title)
				h.raw("</a>")
				if product.Price > 0 {
					h.raw(`<span class="product-price">`)
					h.text(formatPrice(product.Price))
					h.raw("</span>")
				}
				h.raw("</li>")
			}
			h.raw("</ul>")
		}
		h.raw("</section>")
		return h.err
	})
}

func ProductPage(view ProductView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		product := view.Product

		h := newHTMLWriter(w)
		h.raw(`<article class="product">`)
		h.raw("<h1>")
		h.text(product.Title)
		h.raw("</h1>")
		if product.Price > 0 {
			h.raw(`<p class="product-price">`)
			h.text(formatPrice(product.Price))
			h.raw("</p>")
		}
		h.raw(`<div class="product-description">`)
		h.component(ctx, templ.Raw(product.DescriptionHTML))
		h.raw("</div>")
		h.raw("</article>")

		return h.err
	})
}

func formatPrice(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', 2, 64)
}
