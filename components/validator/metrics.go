package validator

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks validation traffic.
//
// Metrics:
//   - formcheck_validations_total: requests by outcome (valid, invalid, rejected)
//   - formcheck_validation_duration_seconds: engine time per uncached request
//   - formcheck_validation_score: score distribution of produced reports
//   - formcheck_cache_requests_total: report cache lookups by result (hit, miss)
type Metrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
	score    prometheus.Histogram
	cache    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when it is
// not nil. Collectors already registered by an earlier component are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "formcheck",
				Name:      "validations_total",
				Help:      "Total number of validation requests by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "formcheck",
			Name:      "validation_duration_seconds",
			Help:      "Time spent validating uncached documents",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		score: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "formcheck",
			Name:      "validation_score",
			Help:      "Distribution of report scores",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "formcheck",
				Name:      "cache_requests_total",
				Help:      "Report cache lookups by result",
			},
			[]string{"result"},
		),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.score, err = register(reg, m.score); err != nil {
		return nil, err
	}
	if m.cache, err = register(reg, m.cache); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observeOutcome(outcome string) {
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeCache(hit bool) {
	if hit {
		m.cache.WithLabelValues("hit").Inc()
		return
	}
	m.cache.WithLabelValues("miss").Inc()
}
