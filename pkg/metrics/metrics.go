package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the service's Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Lookups         *prometheus.CounterVec
	LookupDurations *prometheus.HistogramVec
	Renders         *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDurations   *prometheus.HistogramVec
	EventsPublished *prometheus.CounterVec
}

// NewCollector registers metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	lookups, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geo_lookups_total",
		Help: "Location lookups, labeled by outcome (success or the failure kind).",
	}, []string{"outcome"}), "geo_lookups_total")
	if err != nil {
		return nil, err
	}

	lookupDurations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geo_lookup_duration_seconds",
		Help:    "Location lookup latency in seconds.",
		Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"outcome"}), "geo_lookup_duration_seconds")
	if err != nil {
		return nil, err
	}

	renders, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "display_renders_total",
		Help: "Rendered displays, labeled by source, region and time period.",
	}, []string{"source", "region", "time"}), "display_renders_total")
	if err != nil {
		return nil, err
	}

	httpRequests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests, labeled by method, route and status code.",
	}, []string{"method", "route", "code"}), "http_requests_total")
	if err != nil {
		return nil, err
	}

	httpDurations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"}), "http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	events, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "display_events_published_total",
		Help: "Display events handed to the event bus, labeled by result.",
	}, []string{"result"}), "display_events_published_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		Lookups:         lookups,
		LookupDurations: lookupDurations,
		Renders:         renders,
		HTTPRequests:    httpRequests,
		HTTPDurations:   httpDurations,
		EventsPublished: events,
	}, nil
}

// ObserveLookup records one lookup. A nil collector is a no-op so callers
// need not guard.
func (c *Collector) ObserveLookup(outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Lookups.WithLabelValues(outcome).Inc()
	c.LookupDurations.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveRender(source, region, period string) {
	if c == nil {
		return
	}
	c.Renders.WithLabelValues(source, region, period).Inc()
}

func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDurations.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveEvent(result string) {
	if c == nil {
		return
	}
	c.EventsPublished.WithLabelValues(result).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
