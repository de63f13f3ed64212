// Package metrics exposes Prometheus instruments for the badge service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jbeshir/badge-desk/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "badge_desk"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	chatIntents   *prometheus.CounterVec
	searchStages  *prometheus.CounterVec
	rosterReloads *prometheus.CounterVec
	rosterBadges  prometheus.Gauge
	rosterLoaded  prometheus.Gauge
}

// New registers every instrument on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		chatIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_replies_total",
			Help:      "Chat replies by intent.",
		}, []string{"intent"}),
		searchStages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Badge searches by the stage that produced the result.",
		}, []string{"stage"}),
		rosterReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_reloads_total",
			Help:      "Roster reload attempts by outcome.",
		}, []string{"outcome"}),
		rosterBadges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_badges",
			Help:      "Badges in the current roster.",
		}),
		rosterLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_loaded_timestamp_seconds",
			Help:      "Unix time at which the current roster was loaded.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.chatIntents,
		m.searchStages,
		m.rosterReloads,
		m.rosterBadges,
		m.rosterLoaded,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTPRequest(route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveChatIntent(intent string) {
	if m == nil {
		return
	}
	m.chatIntents.WithLabelValues(intent).Inc()
}

func (m *Metrics) ObserveSearchStage(stage string) {
	if m == nil {
		return
	}
	m.searchStages.WithLabelValues(stage).Inc()
}

// ObserveRosterReload records a reload attempt. The roster gauges only move on success.
func (m *Metrics) ObserveRosterReload(roster *domain.Roster, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.rosterReloads.WithLabelValues("failure").Inc()
		return
	}
	m.rosterReloads.WithLabelValues("success").Inc()
	m.rosterBadges.Set(float64(roster.Len()))
	m.rosterLoaded.Set(float64(roster.LoadedAt().Unix()))
}
