package dispatcher

import (
	"sync"
	"time"
)

type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case HalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// Breaker trips after failThreshold consecutive failures and stays open for
// openFor. After that a single probe is let through; its result closes or
// re-opens the breaker.
type Breaker struct {
	mu               sync.Mutex
	st               State
	consecutiveFails int
	failThreshold    int
	openFor          time.Duration
	nextTryAt        time.Time
	probeInFlight    bool
	now              func() time.Time
}

func NewBreaker(threshold int, openFor time.Duration) *Breaker {
	return &Breaker{failThreshold: threshold, openFor: openFor, now: time.Now}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.st
}

// Ready reports whether Acquire could succeed right now, without claiming the probe.
func (b *Breaker) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.st {
	case Open:
		return !b.now().Before(b.nextTryAt) && !b.probeInFlight
	case HalfOpen:
		return !b.probeInFlight
	default:
		return true
	}
}

func (b *Breaker) Acquire() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.st {
	case Open:
		if !b.now().Before(b.nextTryAt) && !b.probeInFlight {
			b.st = HalfOpen
			b.probeInFlight = true
			return true
		}
		return false
	case HalfOpen:
		if !b.probeInFlight {
			b.probeInFlight = true
			return true
		}
		return false
	default:
		return true
	}
}

func (b *Breaker) OnSuccess() {
	b.mu.Lock()
	b.consecutiveFails = 0
	b.st = Closed
	b.probeInFlight = false
	b.mu.Unlock()
}

func (b *Breaker) OnFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.st == HalfOpen {
		b.trip()
		return
	}

	b.consecutiveFails++
	if b.consecutiveFails >= b.failThreshold {
		b.trip()
	}
}

func (b *Breaker) trip() {
	b.st = Open
	b.nextTryAt = b.now().Add(b.openFor)
	b.probeInFlight = false
}
