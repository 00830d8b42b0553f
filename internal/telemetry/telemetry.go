// Package telemetry exports the Prometheus metrics the blog server records:
// page loads per route, upstream CMS calls, feed proxying, and webhook
// pipeline rebuilds.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

type Metrics struct {
	PageLoads        *prometheus.CounterVec
	PageLoadDuration *prometheus.HistogramVec

	CMSRequests        *prometheus.CounterVec
	CMSRequestDuration *prometheus.HistogramVec

	FeedsProxied    *prometheus.CounterVec
	WebhookRebuilds *prometheus.CounterVec

	PipelineGeneration prometheus.Gauge
}

// New registers the blog metrics with reg. Tests pass a private
// prometheus.NewRegistry so repeated setup does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PageLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cmsblog_page_loads_total",
			Help: "Page loads by route pattern and outcome",
		}, []string{"route", "outcome"}),
		PageLoadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cmsblog_page_load_duration_seconds",
			Help:    "Time to load page data, one CMS fetch per page",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"route"}),
		CMSRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cmsblog_cms_requests_total",
			Help: "Requests issued to the CMS API by status code",
		}, []string{"code", "method"}),
		CMSRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cmsblog_cms_request_duration_seconds",
			Help:    "CMS API round-trip time",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"method"}),
		FeedsProxied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cmsblog_feeds_proxied_total",
			Help: "Feed documents proxied from the CMS by kind and outcome",
		}, []string{"kind", "outcome"}),
		WebhookRebuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cmsblog_webhook_rebuilds_total",
			Help: "Pipeline rebuilds triggered by the CMS webhook",
		}, []string{"outcome"}),
		PipelineGeneration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cmsblog_pipeline_generation",
			Help: "Generation counter of the serving render pipeline",
		}),
	}
}

// Handler serves the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// InstrumentCMSTransport wraps the CMS HTTP transport with request counting
// and duration observation. All Metrics methods accept a nil receiver so
// callers without metrics skip recording.
func (m *Metrics) InstrumentCMSTransport(next http.RoundTripper) http.RoundTripper {
	if m == nil {
		return next
	}
	return promhttp.InstrumentRoundTripperCounter(m.CMSRequests,
		promhttp.InstrumentRoundTripperDuration(m.CMSRequestDuration, next))
}

func (m *Metrics) RecordPageLoad(route string, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.PageLoads.WithLabelValues(route, outcome).Inc()
	m.PageLoadDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) RecordFeedProxy(kind string, outcome string) {
	if m == nil {
		return
	}
	m.FeedsProxied.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) RecordPipelineRebuild(generation uint64) {
	if m == nil {
		return
	}
	m.WebhookRebuilds.WithLabelValues(OutcomeOK).Inc()
	m.PipelineGeneration.Set(float64(generation))
}

func (m *Metrics) RecordPipelineRebuildFailure() {
	if m == nil {
		return
	}
	m.WebhookRebuilds.WithLabelValues(OutcomeError).Inc()
}
