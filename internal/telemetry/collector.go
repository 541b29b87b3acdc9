// Package telemetry exports service and HTTP activity as Prometheus metrics.
package telemetry

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records use-case outcomes and HTTP responses.
type Collector struct {
	useCases        *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	httpStatus      *prometheus.CounterVec
	gateDenied      prometheus.Counter
}

var _ service.UseCaseObserver = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		useCases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "punchclock_use_case_total",
			Help: "Service use cases by name and outcome.",
		}, []string{"use_case", "outcome"}),
		useCaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "punchclock_use_case_duration_seconds",
			Help:    "Service use case latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"use_case"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "punchclock_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		gateDenied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "punchclock_gate_denied_total",
			Help: "Destructive requests rejected by the admin gate.",
		}),
	}

	reg.MustRegister(c.useCases, c.useCaseDuration, c.httpStatus, c.gateDenied)
	return c
}

func (c *Collector) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	c.useCases.WithLabelValues(event.Name, Outcome(event.Err)).Inc()
	c.useCaseDuration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordGateDenied() {
	c.gateDenied.Inc()
}

// Outcome buckets an error into a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, domain.ErrDuplicateOpenSession):
		return "duplicate_open_session"
	case errors.Is(err, domain.ErrAlreadyClosed):
		return "already_closed"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case domain.IsValidation(err):
		return "invalid"
	default:
		return "error"
	}
}

// Handler serves the gathered metrics for scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
