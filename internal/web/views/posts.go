package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"cmsblog/internal/content"
)

func IndexPage(view IndexView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="post-index">`)
		h.raw("<h1>Latest posts</h1>")
		h.component(ctx, postList(view.Posts))
		h.component(ctx, paginationNav(view.Pagination))
		h.raw("</section>")
		return h.err
	})
}

func PostsPage(view PostsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section class="post-index">`)
		h.raw("<h1>All posts</h1>")
		h.component(ctx, postList(view.Posts))
		h.component(ctx, paginationNav(view.Pagination))
		h.raw("</section>")
		return h.err
	})
}

func PostPage(view PostView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		post := view.Post

		h := newHTMLWriter(w)
		h.raw(`<article class="post">`)
		h.raw("<h1>")
		h.text(post.Title)
		h.raw("</h1>")

		h.raw(`<p class="post-byline">`)
		if post.Published != "" {
			h.raw(`<time datetime="` + templ.EscapeString(post.Published) + `">`)
			h.text(post.Published)
			h.raw("</time>")
		}
		if post.AuthorName != "" {
			h.raw(`<span class="post-author">by `)
			h.text(post.AuthorName)
			h.raw("</span>")
		}
		h.raw("</p>")

		if len(post.Categories) > 0 {
			h.raw(`<ul class="post-categories">`)
			for _, category := range post.Categories {
				h.raw("<li><a")
				h.attr("href", "/posts/category/"+category.Slug)
				h.raw(">")
				h.text(category.Name)
				h.raw("</a></li>")
			}
			h.raw("</ul>")
		}

		if post.FeaturedImage != "" {
			h.raw(`<img class="post-featured-image"`)
			h.attr("src", post.FeaturedImage)
			h.attr("alt", post.FeaturedImageAlt)
			h.raw(">")
		}

		h.raw(`<div class="post-body">`)
		h.component(ctx, templ.Raw(post.BodyHTML))
		h.raw("</div>")
		h.raw("</article>")

		return h.err
	})
}

func postList(posts []content.PostSummary) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		if len(posts) == 0 {
			h.raw(`<p class="post-list-empty">No posts yet.</p>`)
			return h.err
		}

		h.raw(`<ul class="post-list">`)
		for _, post := range posts {
			h.raw(`<li class="post-list-item">`)
			h.raw(`<a class="post-list-title"`)
			h.attr("href", "/posts/"+post.Slug)
			h.raw(">")
			h.text(post.Title)
			h.raw("</a>")
			if post.Published != "" {
				h.raw("<time>")
				h.text(post.Published)
				h.raw("</time>")
			}
			if post.Summary != "" {
				h.raw(`<p class="post-list-summary">`)
				h.text(post.Summary)
				h.raw("</p>")
			}
			h.raw("</li>")
		}
		h.raw("</ul>")

		return h.err
	})
}
