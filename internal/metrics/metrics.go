package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutorias", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tutorias", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	StoreWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutorias", Name: "store_writes_total", Help: "Collection writes to the KV backend",
	}, []string{"key", "result"})
	StoreReloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutorias", Name: "store_reloads_total", Help: "Collections reloaded after a change from another process",
	}, []string{"key"})
	NotificationsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutorias", Name: "notifications_created_total", Help: "Notifications appended",
	}, []string{"type"})
	SessionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tutorias", Name: "session_transitions_total", Help: "Tutoring session state changes",
	}, []string{"to"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, StoreWrites, StoreReloads, NotificationsCreated, SessionTransitions)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveHTTP(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func ObserveStoreWrite(key string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreWrites.WithLabelValues(key, result).Inc()
}
