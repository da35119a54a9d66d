package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mergen"

// Plan outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeEmpty  = "empty"
	OutcomeError  = "error"
	OutcomeCached = "cached"
)

var (
	PlanRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "plan_requests_total", Help: "Planning requests by outcome."},
		[]string{"outcome"},
	)
	PlanLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "plan_duration_seconds",
			Help:    "Planning duration seconds by pipeline stage.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Calls to embedding and completion services."},
		[]string{"service", "operation", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "external_request_duration_seconds",
			Help:    "Embedding and completion call duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
	TransferMatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "transfer_matches_total", Help: "Transfer selections by match tier."},
		[]string{"tier"}, // AREA|DISTRICT|CITY|CITY_REGION|DEFAULT|none
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Plan cache hits/misses/sets/errors."},
		[]string{"cache", "event"},
	)
)

// InitRegistry returns a fresh registry holding every mergen collector.
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(PlanRequests, PlanLatency, HTTPRequests, HTTPLatency,
		ExternalRequests, ExternalLatency, TransferMatches, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObservePlan(outcome string) {
	PlanRequests.WithLabelValues(outcome).Inc()
}

func ObserveStage(stage string, dur time.Duration) {
	PlanLatency.WithLabelValues(stage).Observe(dur.Seconds())
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, operation string, err error, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, operation, status(err)).Inc()
	ExternalLatency.WithLabelValues(service, operation).Observe(dur.Seconds())
}

// ObserveTransfer counts a transfer selection. An empty tier means no route matched.
func ObserveTransfer(tier string) {
	if tier == "" {
		tier = "none"
	}
	TransferMatches.WithLabelValues(tier).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|error
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func status(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}
