package client

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blockcheck_client",
			Name:      "requests_total",
			Help:      "Backend operations by endpoint and outcome.",
		},
		[]string{"op", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blockcheck_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of backend operations, retries included.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

// outcomeLabel maps err onto a small fixed label set.
func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, ErrEmptyInput) {
		return "invalid_input"
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind.String()
	}
	return "error"
}

func observe(op string, start time.Time, err error) {
	requestsTotal.WithLabelValues(op, outcomeLabel(err)).Inc()
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
