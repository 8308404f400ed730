package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var responseStatus = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "usi_gateway_response_status",
		Help: "Status of USI gateway responses.",
	},
	[]string{"code", "path"},
)

var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "usi_gateway_duration_seconds",
		Help:    "Duration of USI gateway requests, remote calls included.",
		Buckets: prometheus.LinearBuckets(0.25, 0.25, 20),
	},
	[]string{"path"})

// prometheusMiddleware records the status and duration of every request by
// route.
func prometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := NewResponseWriter(w)
		next.ServeHTTP(rw, r)

		// The pattern is known once chi has routed the request.
		path := routePattern(r)
		statusCode := strconv.Itoa(rw.statusCode)
		responseStatus.WithLabelValues(statusCode, path).Inc()
		requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	})
}

// routePattern is the matched route when chi knows it. It keeps the receipt
// and USI path parameters out of the label values.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func init() {
	prometheus.Register(responseStatus)
}
