package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the dev server's request metrics.
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	proxyErrors     prometheus.Counter
	reloads         prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marquee",
			Subsystem: "devserver",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served",
		}, []string{"route", "method", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "marquee",
			Subsystem: "devserver",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		proxyErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "marquee",
			Subsystem: "devserver",
			Name:      "proxy_errors_total",
			Help:      "Total number of failed API proxy requests",
		}),

		reloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "marquee",
			Subsystem: "devserver",
			Name:      "reloads_total",
			Help:      "Total number of reload broadcasts",
		}),
	}
}

// middleware records one sample per request, labelled by chi route pattern
// so file paths do not explode the label space.
func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
