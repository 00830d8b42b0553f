package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"cmsblog/framework"
	"cmsblog/framework/router"
	"cmsblog/internal/config"
	"cmsblog/internal/content"
	"cmsblog/internal/telemetry"
	"cmsblog/internal/web/appcore"
	"cmsblog/internal/web/views"
)

const (
	patternHome       = "/"
	patternDemoPost   = "/post"
	patternPosts      = "/posts"
	patternPost       = "/posts/[slug]"
	patternCategories = "/posts/categories"
	patternCategory   = "/posts/category/[slug]"
	patternProducts   = "/products"
	patternProduct    = "/products/[slug]"
)

var errContentUnavailable = errors.New("content service unavailable")

type appHandler = framework.RouteHandler[*appcore.Context]

// PageModules assembles every page route. The route set validates the
// declared patterns and fixes the matching order, so "/posts/categories"
// always wins over "/posts/[slug]".
func PageModules(cfg config.Config, metrics *telemetry.Metrics) ([]appHandler, error) {
	handlers := map[string]appHandler{
		patternHome: pageHandler(
			metrics, patternHome, staticPathParams(patternHome), loadIndexPage, views.IndexPage),
		patternDemoPost: pageHandler(
			metrics, patternDemoPost, staticPathParams(patternDemoPost),
			loadDemoPostPage(cfg.DemoPostSlug), views.PostPage),
		patternPosts: pageHandler(
			metrics, patternPosts, staticPathParams(patternPosts), loadPostsPage, views.PostsPage),
		patternPost: pageHandler(
			metrics, patternPost, slugPathParams(patternPost), loadPostPage, views.PostPage),
		patternCategories: pageHandler(
			metrics, patternCategories, staticPathParams(patternCategories),
			loadCategoriesPage, views.CategoriesPage),
		patternCategory: pageHandler(
			metrics, patternCategory, slugPathParams(patternCategory),
			loadCategoryPage, views.CategoryPage),
		patternProducts: pageHandler(
			metrics, patternProducts, staticPathParams(patternProducts),
			loadProductsPage, views.ProductsPage),
		patternProduct: pageHandler(
			metrics, patternProduct, slugPathParams(patternProduct),
			loadProductPage, views.ProductPage),
	}

	patterns := make([]string, 0, len(handlers))
	for pattern := range handlers {
		patterns = append(patterns, pattern)
	}

	routeSet, err := router.NewRouteSet(patterns)
	if err != nil {
		return nil, fmt.Errorf("build route set: %w", err)
	}

	ordered := make([]appHandler, 0, len(handlers))
	for _, pattern := range routeSet.Patterns() {
		ordered = append(ordered, handlers[pattern])
	}

	return ordered, nil
}

func pageHandler[P interface{}, VM interface{ HeadData() views.Head }](
	metrics *telemetry.Metrics,
	pattern string,
	parseParams framework.ParamsParser[P],
	load framework.PageLoader[*appcore.Context, P, VM],
	render framework.PageRenderer[VM],
) appHandler {
	return framework.PageRouteHandler[*appcore.Context, P, VM]{
		Page: framework.PageModule[*appcore.Context, P, VM]{
			Pattern:     pattern,
			ParseParams: parseParams,
			Load:        instrumentLoad(metrics, pattern, load),
			Render:      render,
			Layouts: []framework.LayoutRenderer[VM]{
				func(view VM, child templ.Component) templ.Component {
					return views.Layout(view.HeadData(), child)
				},
			},
		},
	}
}

func staticPathParams(pattern string) framework.ParamsParser[framework.EmptyParams] {
	return func(requestPath string) (framework.EmptyParams, bool) {
		_, ok := router.MatchPathPattern(pattern, requestPath)
		return framework.EmptyParams{}, ok
	}
}

// slugPathParams rejects slugs that fail validation before any loader runs,
// so malformed paths fall through to the not-found page without a CMS call.
func slugPathParams(pattern string) framework.ParamsParser[framework.SlugParams] {
	return func(requestPath string) (framework.SlugParams, bool) {
		params, ok := router.MatchPathPattern(pattern, requestPath)
		if !ok {
			return framework.SlugParams{}, false
		}

		slug := params["slug"]
		if !router.IsValidSlug(slug) {
			return framework.SlugParams{}, false
		}

		return framework.SlugParams{Slug: slug}, true
	}
}

func instrumentLoad[P interface{}, VM interface{}](
	metrics *telemetry.Metrics,
	pattern string,
	load framework.PageLoader[*appcore.Context, P, VM],
) framework.PageLoader[*appcore.Context, P, VM] {
	if metrics == nil {
		return load
	}

	return func(ctx context.Context, appCtx *appcore.Context, r *http.Request, params P) (VM, error) {
		started := time.Now()
		view, err := load(ctx, appCtx, r, params)

		outcome := telemetry.OutcomeOK
		switch {
		case err == nil:
		case appcore.IsNotFoundError(err):
			outcome = telemetry.OutcomeNotFound
		default:
			outcome = telemetry.OutcomeError
		}
		metrics.RecordPageLoad(pattern, outcome, time.Since(started))

		return view, err
	}
}

func loadIndexPage(
	ctx context.Context,
	appCtx *appcore.Context,
	r *http.Request,
	_ framework.EmptyParams,
) (views.IndexView, error) {
	service, err := contentService(appCtx)
	if err != nil {
		return views.IndexView{}, err
	}

	result, err := service.ListPosts(ctx, parsePage(r.URL.Query().Get("page")))
	if err != nil {
		return views.IndexView{}, err
	}

	return newIndexView(result), nil
}

func loadPostsPage(
	ctx context.Context,
	appCtx *appcore.Context,
	r *http.Request,
	_ framework.EmptyParams,
) (views.PostsView, error) {
	service, err := contentService(appCtx)
	if err != nil {
		return views.PostsView{}, err
	}

	result, err := service.ListPosts(ctx, parsePage(r.URL.Query().Get("page")))
	if err != nil {
		return views.PostsView{}, err
	}

	return newPostsView(result), nil
}

// loadDemoPostPage serves the tutorial route that always renders one
// configured post.
func loadDemoPostPage(demoSlug string) framework.PageLoader[*appcore.Context, framework.EmptyParams, views.PostView] {
	return func(
		ctx context.Context,
		appCtx *appcore.Context,
		_ *http.Request,
		_ framework.EmptyParams,
	) (views.PostView, error) {
		service, err := contentService(appCtx)
		if err != nil {
			return views.PostView{}, err
		}

		post, err := service.GetPost(ctx, demoSlug)
		if err != nil {
			return views.PostView{}, err
		}

		return views.PostView{Post: *post}, nil
	}
}

func loadPostPage(
	ctx context.Context,
	appCtx *appcore.Context,
	_ *http.Request,
	params framework.SlugParams,
) (views.PostView, error) {
	service, err := contentService(appCtx)
	if err != nil {
		return views.PostView{}, err
	}

	post, err := service.GetPost(ctx, params.Slug)
	if err != nil {
		return views.PostView{}, err
	}

	return views.PostView{Post: *post}, nil
}

func loadCategoriesPage(
	ctx context.Context,
	appCtx *appcore.Context,
	_ *http.Request,
	_ framework.EmptyParams,
) (views.CategoriesView, error) {
	service, err := contentService(appCtx)
	if err != nil {
		return views.CategoriesView{}, err
	}

	categories, err := service.ListCategories(ctx)
	if err != nil {
		return views.CategoriesView{}, err
	}

	return views.CategoriesView{Categories: categories}, nil
}

func loadCategoryPage(
	ctx context.Context,
	appCtx *appcore.Context,
	_ *http.Request,
	params framework.SlugParams,
) (views.CategoryView, error) {
	service, err := contentService(appCtx)
	if err != nil {
		return views.CategoryView{}, err
	}

	category, err := service.GetCategory(ctx, params.Slug)
	if err != nil {
		return views.CategoryView{}, err
	}

	return views.CategoryView{Category: *category}, nil
}

func loadProductsPage(
	ctx context.Context,
	appCtx *appcore.Context,
	_ *http.Request,
	_ framework.EmptyParams,
) (views.ProductsView, error) {
	service, err := contentService(appCtx)
	if err != nil {
		return views.ProductsView{}, err
	}

	products, err := service.ListProducts(ctx)
	if err != nil {
		return views.ProductsView{}, err
	}

	return views.ProductsView{Products: products}, nil
}

func loadProductPage(
	ctx context.Context,
	appCtx *appcore.Context,
	_ *http.Request,
	params framework.SlugParams,
) (views.ProductView, error) {
	service, err := contentService(appCtx)
	if err != nil {
		return views.ProductView{}, err
	}

	product, err := service.GetProduct(ctx, params.Slug)
	if err != nil {
		return views.ProductView{}, err
	}

	return views.ProductView{Product: *product}, nil
}

func contentService(appCtx *appcore.Context) (*content.Service, error) {
	if appCtx == nil {
		return nil, errContentUnavailable
	}

	state := appCtx.State()
	if state == nil || state.Content == nil {
		return nil, errContentUnavailable
	}

	return state.Content, nil
}
