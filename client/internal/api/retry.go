package api

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	clienterrors "github.com/blockcheck/blockcheck/client/internal/errors"
)

// RetryPolicy controls the opt-in retry loop. The zero value performs a
// single attempt.
type RetryPolicy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxInterval time.Duration
}

// DefaultRetryPolicy returns a policy with the given attempt budget and the
// default backoff bounds.
func DefaultRetryPolicy(attempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: attempts,
		BaseBackoff: 100 * time.Millisecond,
		MaxInterval: 2 * time.Second,
	}
}

var retriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "blockcheck_client",
		Name:      "request_retries_total",
		Help:      "Request attempts repeated after a recoverable failure.",
	},
	[]string{"op"},
)

// withRetry runs fn until it succeeds, fails irrecoverably, the attempt
// budget is spent or ctx is done.
func withRetry(ctx context.Context, p RetryPolicy, op string, fn func(attempt int) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	exp := backoff.NewExponentialBackOff()
	if p.BaseBackoff > 0 {
		exp.InitialInterval = p.BaseBackoff
	}
	exp.Multiplier = 2
	if p.MaxInterval > 0 {
		exp.MaxInterval = p.MaxInterval
	}
	exp.Reset()

	for attempt := 1; ; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		if _, ok := err.(*clienterrors.ClassifiedError); !ok {
			return err
		}
		if clienterrors.IsIrrecoverable(err) || attempt >= maxAttempts {
			return err
		}
		if ctx.Err() != nil {
			return err
		}

		wait := exp.NextBackOff()
		if wait == backoff.Stop {
			return err
		}
		retriesTotal.WithLabelValues(op).Inc()
		log.Debug().Err(err).Str("op", op).Int("attempt", attempt).Dur("wait", wait).Msg("retrying request")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
