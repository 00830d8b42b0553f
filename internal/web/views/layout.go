package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps a page body in the shared document shell: head metadata,
// navigation and the feed links.
func Layout(head Head, child templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)

		h.raw("<!doctype html>")
		h.raw(`<html lang="en">`)
		h.raw("<head>")
		h.raw(`<meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(head.Title)
		h.raw("</title>")
		if head.Description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", head.Description)
			h.raw(">")
			h.raw(`<meta property="og:description"`)
			h.attr("content", head.Description)
			h.raw(">")
		}
		h.raw(`<meta property="og:title"`)
		h.attr("content", head.Title)
		h.raw(">")
		if head.Image != "" {
			h.raw(`<meta property="og:image"`)
			h.attr("content", head.Image)
			h.raw(">")
		}
		h.raw(`<link rel="stylesheet" href="/static/main.css">`)
		h.raw(`<link rel="stylesheet" href="/assets/chroma.css">`)
		h.raw(`<link rel="alternate" type="application/rss+xml" title="RSS" href="/rss">`)
		h.raw(`<link rel="alternate" type="application/atom+xml" title="Atom" href="/atom">`)
		h.raw("</head>")

		h.raw("<body>")
		h.raw(`<header class="site-header">`)
		h.raw(`<a class="site-name" href="/">`)
		h.text(siteTitle)
		h.raw("</a>")
		h.raw(`<nav class="site-nav">`)
		h.raw(`<a href="/posts">Posts</a>`)
		h.raw(`<a href="/posts/categories">Categories</a>`)
		h.raw(`<a href="/products">Products</a>`)
		h.raw("</nav>")
		h.raw("</header>")

		h.raw("<main>")
		h.component(ctx, child)
		h.raw("</main>")

		h.raw(`<footer class="site-footer">`)
		h.raw(`<a href="/rss">RSS</a>`)
		h.raw(`<a href="/atom">Atom</a>`)
		h.raw(`<a href="/sitemap">Sitemap</a>`)
		h.raw("</footer>")
		h.raw("</body></html>")

		return h.err
	})
}
