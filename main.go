package main

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"cmsblog/framework/httpserver"
	"cmsblog/internal/cms"
	"cmsblog/internal/config"
	"cmsblog/internal/telemetry"
	"cmsblog/internal/web"
	"cmsblog/internal/web/appcore"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Dev)
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.APIToken == "" {
		logger.Warn("no CMS api token configured, requests will be unauthenticated")
	}

	metrics := telemetry.New(prometheus.DefaultRegisterer)
	client := cms.NewClient(cfg, metrics)

	appCtx, err := appcore.NewContext(web.PipelineBuilder(client, cfg))
	if err != nil {
		logger.Fatal("pipeline setup failed", zap.Error(err))
	}

	modules, err := web.PageModules(cfg, metrics)
	if err != nil {
		logger.Fatal("route setup failed", zap.Error(err))
	}

	handler, err := httpserver.New(httpserver.Config[*appcore.Context]{
		AppContext:      appCtx,
		Handlers:        modules,
		ExtraRoutes:     web.ExtraRoutes(appCtx, logger, metrics),
		Static:          httpserver.StaticMount{Dir: cfg.StaticDir},
		IsNotFoundError: appcore.IsNotFoundError,
		NotFoundPage:    web.NotFoundPage,
		LogServerError:  web.LogServerError(logger),
	})
	if err != nil {
		logger.Fatal("handler setup failed", zap.Error(err))
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
