package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry            *prometheus.Registry
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	screenedCompanies   *prometheus.CounterVec
}

// NewMetrics uses its own registry so several handlers can coexist in
// one process
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meanrevert_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meanrevert_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		screenedCompanies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meanrevert_screened_companies_total",
				Help: "Companies classified by the screen, by outcome",
			},
			[]string{"outcome"},
		),
	}
	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.screenedCompanies,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	endpoint := c.FullPath()
	if endpoint == "" {
		endpoint = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
	m.httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
}

// RecordScreen counts companies per outcome: excluded (no data),
// non_reverting, long and short
func (m *Metrics) RecordScreen(excluded, nonReverting, long, short int) {
	m.screenedCompanies.WithLabelValues("excluded").Add(float64(excluded))
	m.screenedCompanies.WithLabelValues("non_reverting").Add(float64(nonReverting))
	m.screenedCompanies.WithLabelValues("long").Add(float64(long))
	m.screenedCompanies.WithLabelValues("short").Add(float64(short))
}
