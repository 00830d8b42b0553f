// Package content turns raw CMS resources into render-ready view data:
// highlighted bodies, derived descriptions, formatted dates and pagination
// state. Every service method performs exactly one CMS request.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"cmsblog/internal/cms"
	"cmsblog/internal/richtext"
)

const (
	defaultPageSize = 10
	productPageType = "product"

	summaryExcerptChars  = 260
	metaDescriptionChars = 160
)

// Client is the slice of the CMS API the service consumes.
type Client interface {
	ListPosts(ctx context.Context, page int, pageSize int) (cms.PostList, error)
	RetrievePost(ctx context.Context, slug string) (cms.Post, error)
	ListCategories(ctx context.Context) ([]cms.Category, error)
	RetrieveCategory(ctx context.Context, slug string, includeRecentPosts bool) (cms.Category, error)
	ListPages(ctx context.Context, pageType string) ([]cms.Page, error)
	RetrievePage(ctx context.Context, pageType string, slug string) (cms.Page, error)
	RetrieveFeed(ctx context.Context, kind string) ([]byte, error)
}

type Service struct {
	client   Client
	pageSize int
}

func NewService(client Client, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	return &Service{
		client:   client,
		pageSize: pageSize,
	}
}

type PostSummary struct {
	Slug      string
	Title     string
	Summary   string
	Published string
}

type PostDetail struct {
	Slug             string
	Title            string
	BodyHTML         template.HTML
	SEOTitle         string
	MetaDescription  string
	FeaturedImage    string
	FeaturedImageAlt string
	Published        string
	AuthorName       string
	Categories       []CategoryLink
}

type CategoryLink struct {
	Name string
	Slug string
}

type CategoryDetail struct {
	Name        string
	Slug        string
	RecentPosts []PostSummary
}

// PostListPage is one page of the post index. HasPrev and HasNext mirror the
// CMS paging meta: a link exists exactly when the API reports a page number
// in that direction.
type PostListPage struct {
	Posts    []PostSummary
	Page     int
	HasPrev  bool
	PrevPage int
	HasNext  bool
	NextPage int
}

type Product struct {
	Slug            string
	Title           string
	DescriptionHTML template.HTML
	Price           float64
}

func (s *Service) ListPosts(ctx context.Context, page int) (PostListPage, error) {
	page = sanitizePage(page)

	list, err := s.client.ListPosts(ctx, page, s.pageSize)
	if err != nil {
		return PostListPage{}, fmt.Errorf("list posts page %d: %w", page, err)
	}

	result := PostListPage{
		Posts: mapPostSummaries(list.Data),
		Page:  page,
	}
	if list.Meta.PreviousPage != nil {
		result.HasPrev = true
		result.PrevPage = *list.Meta.PreviousPage
	}
	if list.Meta.NextPage != nil {
		result.HasNext = true
		result.NextPage = *list.Meta.NextPage
	}

	return result, nil
}

func (s *Service) GetPost(ctx context.Context, slug string) (*PostDetail, error) {
	post, err := s.client.RetrievePost(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post %q: %w", slug, err)
	}

	detail := PostDetail{
		Slug:             strOr(post.Slug, slug),
		Title:            strOr(post.Title, slug),
		BodyHTML:         richtext.Highlight(post.Body),
		SEOTitle:         strOr(post.SEOTitle, strOr(post.Title, slug)),
		MetaDescription:  strOr(post.MetaDescription, richtext.Excerpt(post.Body, metaDescriptionChars)),
		FeaturedImage:    strings.TrimSpace(post.FeaturedImage),
		FeaturedImageAlt: strings.TrimSpace(post.FeaturedImageAlt),
		Published:        formatDate(post.Published),
		AuthorName:       authorName(post.Author),
		Categories:       mapCategoryLinks(post.Categories),
	}

	return &detail, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]CategoryLink, error) {
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]CategoryLink, 0, len(categories))
	for _, category := range categories {
		out = append(out, CategoryLink{
			Name: strOr(category.Name, category.Slug),
			Slug: category.Slug,
		})
	}

	return out, nil
}

func (s *Service) GetCategory(ctx context.Context, slug string) (*CategoryDetail, error) {
	category, err := s.client.RetrieveCategory(ctx, slug, true)
	if err != nil {
		return nil, fmt.Errorf("get category %q: %w", slug, err)
	}

	return &CategoryDetail{
		Name:        strOr(category.Name, slug),
		Slug:        strOr(category.Slug, slug),
		RecentPosts: mapPostSummaries(category.RecentPosts),
	}, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	pages, err := s.client.ListPages(ctx, productPageType)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]Product, 0, len(pages))
	for _, page := range pages {
		out = append(out, productFromPage(page))
	}

	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, slug string) (*Product, error) {
	page, err := s.client.RetrievePage(ctx, productPageType, slug)
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", slug, err)
	}

	product := productFromPage(page)
	return &product, nil
}

// Feed returns the prebuilt XML document for a feed kind without touching
// its bytes.
func (s *Service) Feed(ctx context.Context, kind string) ([]byte, error) {
	raw, err := s.client.RetrieveFeed(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", kind, err)
	}

	return raw, nil
}

func mapPostSummaries(posts []cms.Post) []PostSummary {
	out := make([]PostSummary, 0, len(posts))
	for _, post := range posts {
		out = append(out, PostSummary{
			Slug:      post.Slug,
			Title:     strOr(post.Title, post.Slug),
			Summary:   strOr(post.Summary, richtext.Excerpt(post.Body, summaryExcerptChars)),
			Published: formatDate(post.Published),
		})
	}

	return out
}

func mapCategoryLinks(categories []cms.Category) []CategoryLink {
	out := make([]CategoryLink, 0, len(categories))
	for _, category := range categories {
		out = append(out, CategoryLink{
			Name: strOr(category.Name, category.Slug),
			Slug: category.Slug,
		})
	}

	return out
}

type productFields struct {
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func productFromPage(page cms.Page) Product {
	var fields productFields
	if len(page.Fields) > 0 {
		// Unknown field shapes degrade to slug-only products.
		_ = json.Unmarshal(page.Fields, &fields)
	}

	title := strOr(fields.Title, strOr(fields.Name, strOr(page.Name, page.Slug)))

	return Product{
		Slug:            page.Slug,
		Title:           title,
		DescriptionHTML: richtext.Highlight(fields.Description),
		Price:           fields.Price,
	}
}

func authorName(author cms.Author) string {
	name := strings.TrimSpace(strings.TrimSpace(author.FirstName) + " " + strings.TrimSpace(author.LastName))
	if name != "" {
		return name
	}

	return strings.TrimSpace(author.Slug)
}

func formatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return raw
		}
	}

	return parsed.Format("2006-01-02")
}

func strOr(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}

	return trimmed
}

func sanitizePage(page int) int {
	if page < 1 {
		return 1
	}

	return page
}
