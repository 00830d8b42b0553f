package web

import (
	"net/url"
	"strconv"

	"cmsblog/internal/content"
	"cmsblog/internal/web/views"
)

func newIndexView(result content.PostListPage) views.IndexView {
	return views.IndexView{
		Posts:      result.Posts,
		Pagination: buildPagination(patternHome, result),
	}
}

func newPostsView(result content.PostListPage) views.PostsView {
	return views.PostsView{
		Posts:      result.Posts,
		Pagination: buildPagination(patternPosts, result),
	}
}

// buildPagination emits links for exactly the directions the CMS paging
// meta reported.
func buildPagination(basePath string, result content.PostListPage) views.Pagination {
	pagination := views.Pagination{}
	if result.HasPrev {
		pagination.HasPrev = true
		pagination.PrevURL = buildPageURL(basePath, result.PrevPage)
	}
	if result.HasNext {
		pagination.HasNext = true
		pagination.NextURL = buildPageURL(basePath, result.NextPage)
	}

	return pagination
}

func buildPageURL(basePath string, page int) string {
	q := make(url.Values)
	q.Set("page", strconv.Itoa(page))
	return basePath + "?" + q.Encode()
}

func parsePage(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return 1
	}

	return parsed
}
