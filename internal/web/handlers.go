// Package web wires the CMS-backed pages, feeds and webhook onto the
// framework server.
package web

import (
	"io"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"cmsblog/framework"
	"cmsblog/framework/httpserver"
	"cmsblog/internal/config"
	"cmsblog/internal/content"
	"cmsblog/internal/richtext"
	"cmsblog/internal/telemetry"
	"cmsblog/internal/web/appcore"
	"cmsblog/internal/web/views"
)

const (
	sitemapPath   = "/sitemap"
	rssPath       = "/rss"
	atomPath      = "/atom"
	webhookPath   = "/webhook-receiver"
	chromaCSSPath = "/assets/chroma.css"
	metricsPath   = "/metrics"
)

const maxWebhookBodyBytes = 1 << 20

// PipelineBuilder returns the build function behind pipeline rebuilds: each
// call derives a fresh content service and chroma stylesheet from the shared
// CMS client.
func PipelineBuilder(client content.Client, cfg config.Config) appcore.BuildStateFunc {
	return func(generation uint64) (*appcore.State, error) {
		css, err := richtext.ChromaCSS()
		if err != nil {
			return nil, err
		}

		return &appcore.State{
			Content:    content.NewService(client, cfg.PageSize),
			ChromaCSS:  css,
			Generation: generation,
			BuiltAt:    time.Now(),
		}, nil
	}
}

// ExtraRoutes returns the non-page endpoints served ahead of the page
// engine: the three feed proxies, the publish webhook, the generated chroma
// stylesheet and the metrics endpoint.
func ExtraRoutes(
	appCtx *appcore.Context,
	logger *zap.Logger,
	metrics *telemetry.Metrics,
) []httpserver.ExtraRoute {
	return []httpserver.ExtraRoute{
		feedRoute(appCtx, logger, metrics, sitemapPath, "sitemap", "application/xml; charset=utf-8"),
		feedRoute(appCtx, logger, metrics, rssPath, "rss", "application/rss+xml; charset=utf-8"),
		feedRoute(appCtx, logger, metrics, atomPath, "atom", "application/atom+xml; charset=utf-8"),
		webhookRoute(appCtx, logger, metrics),
		chromaCSSRoute(appCtx),
		{Method: http.MethodGet, Path: metricsPath, Handler: telemetry.Handler()},
	}
}

// NotFoundPage renders the shared 404 page for unmatched routes and for
// loads that came back empty-handed.
func NotFoundPage(notFound framework.NotFoundContext) templ.Component {
	view := views.NotFoundView{Path: notFound.RequestPath}
	return views.Layout(view.HeadData(), views.NotFoundPage(view))
}

// LogServerError adapts the framework's error callback to structured logs
// carrying the request path and id.
func LogServerError(logger *zap.Logger) func(r *http.Request, err error) {
	return func(r *http.Request, err error) {
		logger.Error("page request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpserver.RequestIDFromContext(r.Context())),
			zap.Error(err))
	}
}

// feedRoute proxies one prebuilt CMS feed. The XML passes through untouched;
// an upstream failure turns into a 502 because the document cannot be
// regenerated locally.
func feedRoute(
	appCtx *appcore.Context,
	logger *zap.Logger,
	metrics *telemetry.Metrics,
	path string,
	kind string,
	contentType string,
) httpserver.ExtraRoute {
	return httpserver.ExtraRoute{
		Method: http.MethodGet,
		Path:   path,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			service, err := contentService(appCtx)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}

			raw, err := service.Feed(r.Context(), kind)
			if err != nil {
				logger.Error("feed proxy failed",
					zap.String("kind", kind),
					zap.String("request_id", httpserver.RequestIDFromContext(r.Context())),
					zap.Error(err))
				metrics.RecordFeedProxy(kind, telemetry.OutcomeError)
				http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
				return
			}

			metrics.RecordFeedProxy(kind, telemetry.OutcomeOK)
			setCacheControlPublicHour(w)
			w.Header().Set("Content-Type", contentType)
			_, _ = w.Write(raw)
		}),
	}
}

// webhookRoute rebuilds the render pipeline when the CMS announces a
// publish. The payload identifies what changed, but a rebuild refreshes
// everything, so the body is drained and ignored.
func webhookRoute(
	appCtx *appcore.Context,
	logger *zap.Logger,
	metrics *telemetry.Metrics,
) httpserver.ExtraRoute {
	return httpserver.ExtraRoute{
		Method: http.MethodPost,
		Path:   webhookPath,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, maxWebhookBodyBytes))

			state, err := appCtx.Reinit()
			if err != nil {
				logger.Error("pipeline rebuild failed",
					zap.String("request_id", httpserver.RequestIDFromContext(r.Context())),
					zap.Error(err))
				metrics.RecordPipelineRebuildFailure()
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			logger.Info("pipeline rebuilt",
				zap.Uint64("generation", state.Generation),
				zap.String("request_id", httpserver.RequestIDFromContext(r.Context())))
			metrics.RecordPipelineRebuild(state.Generation)
			w.WriteHeader(http.StatusNoContent)
		}),
	}
}

// chromaCSSRoute serves the stylesheet generated for the current pipeline
// snapshot, so a rebuild can pick up palette changes.
func chromaCSSRoute(appCtx *appcore.Context) httpserver.ExtraRoute {
	return httpserver.ExtraRoute{
		Method: http.MethodGet,
		Path:   chromaCSSPath,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			state := appCtx.State()
			if state == nil {
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}

			setCacheControlPublicHour(w)
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
			_, _ = w.Write([]byte(state.ChromaCSS))
		}),
	}
}
