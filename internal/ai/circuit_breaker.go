package ai

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned when the circuit breaker is open and rejects
// requests to keep a misbehaving model API from stalling every handler.
var ErrCircuitOpen = errors.New("ai circuit breaker is open")

// BreakerConfig holds circuit breaker tuning.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures required to trip
	// the circuit. Default: 3.
	MaxFailures uint32

	// Timeout is how long the circuit stays open before half-open probes
	// are allowed. Default: 30 seconds.
	Timeout time.Duration

	// HalfOpenMaxSuccesses is the number of consecutive successes in the
	// half-open state needed to close the circuit. Default: 2.
	HalfOpenMaxSuccesses uint32
}

// BreakerMetrics is a snapshot of circuit breaker counters.
type BreakerMetrics struct {
	TotalRequests        uint64
	TotalSuccesses       uint64
	TotalFailures        uint64
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// Breaker wraps gobreaker to protect Gemini calls from cascading
// failures. Closed passes requests through; after MaxFailures consecutive
// failures the circuit opens and rejects immediately; after Timeout it
// half-opens and probes.
type Breaker struct {
	breaker *gobreaker.CircuitBreaker
	mu      sync.Mutex
	metrics BreakerMetrics
}

// NewBreaker creates a circuit breaker with the default tuning
// (3 failures to trip, 30s open, 2 successes to close).
func NewBreaker() *Breaker {
	return NewBreakerWithConfig(BreakerConfig{
		MaxFailures:          3,
		Timeout:              30 * time.Second,
		HalfOpenMaxSuccesses: 2,
	})
}

// NewBreakerWithConfig creates a circuit breaker with custom tuning.
func NewBreakerWithConfig(config BreakerConfig) *Breaker {
	b := &Breaker{}
	b.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiGateway",
		MaxRequests: config.HalfOpenMaxSuccesses,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.MaxFailures
		},
	})
	return b
}

// Execute runs fn through the circuit breaker. If the circuit is open it
// returns ErrCircuitOpen immediately. The context is checked before
// execution so a cancelled caller never burns a probe.
func (b *Breaker) Execute(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	select {
	case <-ctx.Done():
		b.record(false)
		return nil, ctx.Err()
	default:
	}

	result, err := b.breaker.Execute(func() (interface{}, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		return fn()
	})

	b.record(err == nil)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCircuitOpen
	}
	return result, err
}

// State returns "closed", "open", or "half-open".
func (b *Breaker) State() string {
	switch b.breaker.State() {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateOpen:
		return "open"
	case gobreaker.StateHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// Metrics returns a snapshot of the breaker counters.
func (b *Breaker) Metrics() BreakerMetrics {
	b.mu.Lock()
	defer b.mu.Unlock()

	counts := b.breaker.Counts()
	m := b.metrics
	m.ConsecutiveSuccesses = counts.ConsecutiveSuccesses
	m.ConsecutiveFailures = counts.ConsecutiveFailures
	return m
}

func (b *Breaker) record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.metrics.TotalRequests++
	if success {
		b.metrics.TotalSuccesses++
	} else {
		b.metrics.TotalFailures++
	}
}
