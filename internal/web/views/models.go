// Package views holds the server-rendered page components and their view
// models. Components are plain templ components writing escaped markup;
// the only unescaped region is the CMS body HTML, which the content layer
// has already processed.
package views

import "cmsblog/internal/content"

const (
	siteTitle       = "CMS Blog"
	siteDescription = "A server-rendered blog powered by a hosted CMS."
)

// Head carries everything the layout needs for the document head.
type Head struct {
	Title       string
	Description string
	Image       string
}

// Pagination is rendered only in the directions the CMS reported a page
// for; a missing link means the field stays false.
type Pagination struct {
	HasPrev bool
	PrevURL string
	HasNext bool
	NextURL string
}

type IndexView struct {
	Posts      []content.PostSummary
	Pagination Pagination
}

func (IndexView) HeadData() Head {
	return Head{Title: siteTitle, Description: siteDescription}
}

type PostsView struct {
	Posts      []content.PostSummary
	Pagination Pagination
}

func (PostsView) HeadData() Head {
	return Head{Title: "Posts | " + siteTitle, Description: siteDescription}
}

type PostView struct {
	Post content.PostDetail
}

func (v PostView) HeadData() Head {
	return Head{
		Title:       v.Post.SEOTitle + " | " + siteTitle,
		Description: v.Post.MetaDescription,
		Image:       v.Post.FeaturedImage,
	}
}

type CategoriesView struct {
	Categories []content.CategoryLink
}

func (CategoriesView) HeadData() Head {
	return Head{Title: "Categories | " + siteTitle, Description: siteDescription}
}

type CategoryView struct {
	Category content.CategoryDetail
}

func (v CategoryView) HeadData() Head {
	return Head{Title: v.Category.Name + " | " + siteTitle, Description: siteDescription}
}

type ProductsView struct {
	Products []content.Product
}

func (ProductsView) HeadData() Head {
	return Head{Title: "Products | " + siteTitle, Description: siteDescription}
}

type ProductView struct {
	Product content.Product
}

func (v ProductView) HeadData() Head {
	return Head{Title: v.Product.Title + " | " + siteTitle}
}

type NotFoundView struct {
	Path string
}

func (NotFoundView) HeadData() Head {
	return Head{Title: "Page not found | " + siteTitle}
}
