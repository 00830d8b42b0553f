package content

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cmsblog/internal/cms"
)

type fakeClient struct {
	calls int

	listPostsFn        func(ctx context.Context, page int, pageSize int) (cms.PostList, error)
	retrievePostFn     func(ctx context.Context, slug string) (cms.Post, error)
	listCategoriesFn   func(ctx context.Context) ([]cms.Category, error)
	retrieveCategoryFn func(ctx context.Context, slug string, includeRecentPosts bool) (cms.Category, error)
	listPagesFn        func(ctx context.Context, pageType string) ([]cms.Page, error)
	retrievePageFn     func(ctx context.Context, pageType string, slug string) (cms.Page, error)
	retrieveFeedFn     func(ctx context.Context, kind string) ([]byte, error)
}

func (f *fakeClient) ListPosts(ctx context.Context, page int, pageSize int) (cms.PostList, error) {
	f.calls++
	if f.listPostsFn == nil {
		return cms.PostList{}, nil
	}
	return f.listPostsFn(ctx, page, pageSize)
}

func (f *fakeClient) RetrievePost(ctx context.Context, slug string) (cms.Post, error) {
	f.calls++
	if f.retrievePostFn == nil {
		return cms.Post{Slug: slug}, nil
	}
	return f.retrievePostFn(ctx, slug)
}

func (f *fakeClient) ListCategories(ctx context.Context) ([]cms.Category, error) {
	f.calls++
	if f.listCategoriesFn == nil {
		return nil, nil
	}
	return f.listCategoriesFn(ctx)
}

func (f *fakeClient) RetrieveCategory(ctx context.Context, slug string, includeRecentPosts bool) (cms.Category, error) {
	f.calls++
	if f.retrieveCategoryFn == nil {
		return cms.Category{Slug: slug}, nil
	}
	return f.retrieveCategoryFn(ctx, slug, includeRecentPosts)
}

func (f *fakeClient) ListPages(ctx context.Context, pageType string) ([]cms.Page, error) {
	f.calls++
	if f.listPagesFn == nil {
		return nil, nil
	}
	return f.listPagesFn(ctx, pageType)
}

func (f *fakeClient) RetrievePage(ctx context.Context, pageType string, slug string) (cms.Page, error) {
	f.calls++
	if f.retrievePageFn == nil {
		return cms.Page{Slug: slug, PageType: pageType}, nil
	}
	return f.retrievePageFn(ctx, pageType, slug)
}

func (f *fakeClient) RetrieveFeed(ctx context.Context, kind string) ([]byte, error) {
	f.calls++
	if f.retrieveFeedFn == nil {
		return nil, nil
	}
	return f.retrieveFeedFn(ctx, kind)
}

func intPtr(v int) *int {
	return &v
}

func TestListPostsPaginationFollowsMeta(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		meta     cms.ListMeta
		wantPrev bool
		wantNext bool
	}{
		{
			name:     "middle page links both ways",
			meta:     cms.ListMeta{PreviousPage: intPtr(1), NextPage: intPtr(3), Count: 30},
			wantPrev: true,
			wantNext: true,
		},
		{
			name:     "first page has no previous link",
			meta:     cms.ListMeta{NextPage: intPtr(2), Count: 30},
			wantNext: true,
		},
		{
			name:     "last page has no next link",
			meta:     cms.ListMeta{PreviousPage: intPtr(1), Count: 30},
			wantPrev: true,
		},
		{
			name: "single page links nowhere",
			meta: cms.ListMeta{Count: 3},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeClient{
				listPostsFn: func(_ context.Context, _ int, _ int) (cms.PostList, error) {
					return cms.PostList{
						Meta: tc.meta,
						Data: []cms.Post{{Slug: "a-post", Title: "A Post"}},
					}, nil
				},
			}

			result, err := NewService(fake, 10).ListPosts(context.Background(), 2)
			require.NoError(t, err)

			require.Equal(t, tc.wantPrev, result.HasPrev)
			require.Equal(t, tc.wantNext, result.HasNext)
			if tc.wantPrev {
				require.Equal(t, *tc.meta.PreviousPage, result.PrevPage)
			}
			if tc.wantNext {
				require.Equal(t, *tc.meta.NextPage, result.NextPage)
			}
			require.Len(t, result.Posts, 1)
		})
	}
}

func TestListPostsSanitizesPageAndSize(t *testing.T) {
	t.Parallel()

	var gotPage, gotSize int
	fake := &fakeClient{
		listPostsFn: func(_ context.Context, page int, pageSize int) (cms.PostList, error) {
			gotPage, gotSize = page, pageSize
			return cms.PostList{}, nil
		},
	}

	result, err := NewService(fake, 0).ListPosts(context.Background(), -3)
	require.NoError(t, err)
	require.Equal(t, 1, gotPage)
	require.Equal(t, defaultPageSize, gotSize)
	require.Equal(t, 1, result.Page)
}

func TestGetPostDerivesPresentationFields(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{
		retrievePostFn: func(_ context.Context, slug string) (cms.Post, error) {
			return cms.Post{
				Slug:      slug,
				Title:     "Hello World",
				Body:      "<p>Plenty of   interesting words here.</p>",
				Published: "2024-04-23T15:05:25.344724Z",
				Author:    cms.Author{FirstName: "Ada", LastName: "Lovelace"},
				Categories: []cms.Category{
					{Name: "Intro", Slug: "intro"},
				},
			}, nil
		},
	}

	post, err := NewService(fake, 10).GetPost(context.Background(), "hello-world")
	require.NoError(t, err)

	require.Equal(t, "Hello World", post.Title)
	require.Equal(t, "Hello World", post.SEOTitle, "seo title falls back to the title")
	require.Equal(t, "Plenty of interesting words here.", post.MetaDescription,
		"meta description falls back to a body excerpt")
	require.Equal(t, "2024-04-23", post.Published)
	require.Equal(t, "Ada Lovelace", post.AuthorName)
	require.Contains(t, string(post.BodyHTML), "interesting words")
	require.Len(t, post.Categories, 1)
	require.Equal(t, "intro", post.Categories[0].Slug)
}

func TestGetPostHighlightsCodeBlocks(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{
		retrievePostFn: func(_ context.Context, slug string) (cms.Post, error) {
			return cms.Post{
				Slug:  slug,
				Title: "Code",
				Body:  `<pre><code class="language-go">fmt.Println("hi")</code></pre>`,
			}, nil
		},
	}

	post, err := NewService(fake, 10).GetPost(context.Background(), "code")
	require.NoError(t, err)
	require.Contains(t, string(post.BodyHTML), `class="chroma"`)
}

func TestGetPostKeepsNotFoundIdentity(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{
		retrievePostFn: func(_ context.Context, _ string) (cms.Post, error) {
			return cms.Post{}, cms.ErrNotFound
		},
	}

	_, err := NewService(fake, 10).GetPost(context.Background(), "missing")
	require.ErrorIs(t, err, cms.ErrNotFound)
}

func TestGetCategoryRequestsRecentPosts(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{
		retrieveCategoryFn: func(_ context.Context, slug string, includeRecentPosts bool) (cms.Category, error) {
			require.True(t, includeRecentPosts)
			return cms.Category{
				Name: "Intro",
				Slug: slug,
				RecentPosts: []cms.Post{
					{Slug: "hello-world", Title: "Hello World", Published: "2024-04-23T15:05:25Z"},
				},
			}, nil
		},
	}

	category, err := NewService(fake, 10).GetCategory(context.Background(), "intro")
	require.NoError(t, err)
	require.Equal(t, "Intro", category.Name)
	require.Len(t, category.RecentPosts, 1)
	require.Equal(t, "hello-world", category.RecentPosts[0].Slug)
	require.Equal(t, "2024-04-23", category.RecentPosts[0].Published)
}

func TestProductsDecodePageFields(t *testing.T) {
	t.Parallel()

	fields := json.RawMessage(`{"name": "Blue Widget", "description": "<p>Shiny.</p>", "price": 25.5}`)
	fake := &fakeClient{
		listPagesFn: func(_ context.Context, pageType string) ([]cms.Page, error) {
			require.Equal(t, "product", pageType)
			return []cms.Page{{Slug: "blue-widget", PageType: pageType, Fields: fields}}, nil
		},
		retrievePageFn: func(_ context.Context, pageType string, slug string) (cms.Page, error) {
			require.Equal(t, "product", pageType)
			return cms.Page{Slug: slug, PageType: pageType, Fields: fields}, nil
		},
	}
	service := NewService(fake, 10)

	products, err := service.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Blue Widget", products[0].Title, "title falls back to the name field")
	require.InEpsilon(t, 25.5, products[0].Price, 1e-9)
	require.Contains(t, string(products[0].DescriptionHTML), "Shiny.")

	product, err := service.GetProduct(context.Background(), "blue-widget")
	require.NoError(t, err)
	require.Equal(t, "blue-widget", product.Slug)
	require.Equal(t, "Blue Widget", product.Title)
}

func TestFeedBytesPassThroughUntouched(t *testing.T) {
	t.Parallel()

	const doc = `<?xml version="1.0"?><rss version="2.0"></rss>`
	fake := &fakeClient{
		retrieveFeedFn: func(_ context.Context, kind string) ([]byte, error) {
			require.Equal(t, "rss", kind)
			return []byte(doc), nil
		},
	}

	raw, err := NewService(fake, 10).Feed(context.Background(), "rss")
	require.NoError(t, err)
	require.Equal(t, doc, string(raw))
}

func TestEveryMethodPerformsExactlyOneRequest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		call func(*Service) error
	}{
		{name: "list posts", call: func(s *Service) error {
			_, err := s.ListPosts(context.Background(), 1)
			return err
		}},
		{name: "get post", call: func(s *Service) error {
			_, err := s.GetPost(context.Background(), "a")
			return err
		}},
		{name: "list categories", call: func(s *Service) error {
			_, err := s.ListCategories(context.Background())
			return err
		}},
		{name: "get category", call: func(s *Service) error {
			_, err := s.GetCategory(context.Background(), "a")
			return err
		}},
		{name: "list products", call: func(s *Service) error {
			_, err := s.ListProducts(context.Background())
			return err
		}},
		{name: "get product", call: func(s *Service) error {
			_, err := s.GetProduct(context.Background(), "a")
			return err
		}},
		{name: "feed", call: func(s *Service) error {
			_, err := s.Feed(context.Background(), "rss")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeClient{}
			require.NoError(t, tc.call(NewService(fake, 10)))
			require.Equal(t, 1, fake.calls)
		})
	}
}

func TestFormatDateToleratesUnparsableInput(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", formatDate("  "))
	require.Equal(t, "2024-04-23", formatDate("2024-04-23T15:05:25Z"))
	require.Equal(t, "yesterday", formatDate("yesterday"))
}

func TestPostSummaryFallsBackToBodyExcerpt(t *testing.T) {
	t.Parallel()

	long := "<p>" + strings.Repeat("word ", 80) + "</p>"
	summaries := mapPostSummaries([]cms.Post{{Slug: "a", Body: long}})

	require.Len(t, summaries, 1)
	require.NotEmpty(t, summaries[0].Summary)
	require.True(t, strings.HasSuffix(summaries[0].Summary, "..."))
}
