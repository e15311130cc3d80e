// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package breaker wraps sony/gobreaker with the metric and log wiring shared
// by the upstream vendor clients. Each vendor owns one named breaker; a
// misbehaving vendor trips its own circuit without affecting the other.
//
// DETERMINISM NOTE: the breaker uses real time (via sony/gobreaker) for its
// interval and timeout calculations. The timing governs recovery, not data
// integrity; unit tests should exercise the wrapped call directly or drive
// the breaker with enough failures to trip it synchronously.
package breaker

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/metrics"
)

// State gauge encoding, shared with the metrics package.
const (
	stateClosed   = 0
	stateHalfOpen = 1
	stateOpen     = 2
)

// Breaker is a typed circuit breaker around calls returning T.
//
// Configuration (fixed for all vendors):
//   - Max 3 concurrent probes in half-open state
//   - 1 minute measurement window
//   - 2 minute open period before attempting recovery
//   - Opens at >= 60% failure rate over at least 10 requests
type Breaker[T any] struct {
	name string
	cb   *gobreaker.CircuitBreaker[T]
}

// New creates a named breaker and initializes its state gauge to closed.
func New[T any](name string) *Breaker[T] {
	metrics.SetCircuitBreakerState(name, stateClosed)

	cb := gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.SetCircuitBreakerState(name, stateToInt(to))
			metrics.RecordCircuitBreakerTransition(name, fromStr, toStr)
		},
	})

	return &Breaker[T]{name: name, cb: cb}
}

// Name returns the breaker's metric label.
func (b *Breaker[T]) Name() string {
	return b.name
}

// Execute runs fn under breaker protection and records the outcome as
// success, failure, or rejected (circuit open / half-open probe budget
// exhausted).
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	result, err := b.cb.Execute(fn)

	if err != nil {
		if IsOpen(err) {
			metrics.RecordCircuitBreakerRequest(b.name, "rejected")
			logging.Warn().Str("breaker", b.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.RecordCircuitBreakerRequest(b.name, "failure")
		}
		var zero T
		return zero, err
	}

	metrics.RecordCircuitBreakerRequest(b.name, "success")
	return result, nil
}

// IsOpen reports whether err is a breaker rejection rather than a failure of
// the wrapped call. Callers use this to fail fast instead of retrying into
// an open circuit.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateToInt(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return stateClosed
	case gobreaker.StateHalfOpen:
		return stateHalfOpen
	case gobreaker.StateOpen:
		return stateOpen
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
