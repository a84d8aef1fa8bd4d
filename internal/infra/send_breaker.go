package infra

import (
	"errors"
	"sync"
	"time"
)

// BreakerState is the delivery gate for the mailer: closed (sending), open
// (fast-failing) or half-open (one probe send allowed).
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

// String is what /health reports for the "smtp" field.
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrMailerUnavailable is returned while the breaker is open. The worker
// treats it like any other send failure: requeue, then DLQ.
var ErrMailerUnavailable = errors.New("smtp unavailable, send skipped")

// Alert emails are best-effort and already retried by the job queue, so the
// breaker trips early and probes again after a short cool-off rather than
// letting workers block on a dead SMTP server.
const (
	breakerTripAfter  = 3
	breakerCloseAfter = 2
	breakerCoolOff    = 2 * time.Minute
)

// sendBreaker serializes SMTP delivery attempts behind the trip/probe cycle.
type sendBreaker struct {
	mu        sync.Mutex
	state     BreakerState
	failures  int
	probeWins int
	trippedAt time.Time
}

func newSendBreaker() *sendBreaker { return &sendBreaker{state: BreakerClosed} }

// currentState reads the state, moving open → half-open once the cool-off
// has elapsed.
func (b *sendBreaker) currentState() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BreakerOpen && time.Since(b.trippedAt) >= breakerCoolOff {
		b.state = BreakerHalfOpen
		b.probeWins = 0
	}
	return b.state
}

// do runs send through the breaker, fast-failing while it is open.
func (b *sendBreaker) do(send func() error) error {
	if b.currentState() == BreakerOpen {
		return ErrMailerUnavailable
	}

	err := send()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.recordFailure()
		return err
	}
	b.recordSuccess()
	return nil
}

func (b *sendBreaker) recordFailure() {
	b.failures++
	b.trippedAt = time.Now()

	switch b.state {
	case BreakerClosed:
		if b.failures >= breakerTripAfter {
			b.state = BreakerOpen
			b.probeWins = 0
		}
	case BreakerHalfOpen:
		// Probe failed, back to fast-fail for another cool-off.
		b.state = BreakerOpen
		b.failures = 0
	}
}

func (b *sendBreaker) recordSuccess() {
	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		b.probeWins++
		if b.probeWins >= breakerCloseAfter {
			b.state = BreakerClosed
			b.failures = 0
			b.probeWins = 0
		}
	}
}
