package fetcher

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the browser fallback is suspended after
// repeated failures.
var ErrCircuitOpen = errors.New("browser fallback circuit is open")

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

func (s breakerState) String() string {
	switch s {
	case stateClosed:
		return "closed"
	case stateOpen:
		return "open"
	case stateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// breaker stops launching browsers after failureThreshold consecutive
// failures. After cooldown a single trial call is let through; its result
// closes or reopens the circuit. Only errors accepted by trips count as
// failures; any other outcome counts as a success.
type breaker struct {
	mu               sync.Mutex
	state            breakerState
	failures         int
	openedAt         time.Time
	trialInFlight    bool
	failureThreshold int
	cooldown         time.Duration
	now              func() time.Time
	trips            func(error) bool
	onStateChange    func(from, to breakerState)
}

func newBreaker(failureThreshold int, cooldown time.Duration) *breaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if cooldown <= 0 {
		cooldown = 5 * time.Minute
	}
	return &breaker{
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		now:              time.Now,
		trips:            func(err error) bool { return err != nil },
	}
}

func (b *breaker) execute(fn func() error) error {
	if err := b.before(); err != nil {
		return err
	}
	err := fn()
	b.after(err)
	return err
}

func (b *breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateOpen:
		if b.now().Sub(b.openedAt) < b.cooldown {
			return ErrCircuitOpen
		}
		b.transition(stateHalfOpen)
		b.trialInFlight = true
		return nil
	case stateHalfOpen:
		if b.trialInFlight {
			return ErrCircuitOpen
		}
		b.trialInFlight = true
		return nil
	default:
		return nil
	}
}

func (b *breaker) after(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.trialInFlight = false
	if !b.trips(err) {
		b.failures = 0
		b.transition(stateClosed)
		return
	}

	b.failures++
	if b.state == stateHalfOpen || b.failures >= b.failureThreshold {
		b.openedAt = b.now()
		b.transition(stateOpen)
	}
}

func (b *breaker) transition(to breakerState) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	if to != stateOpen {
		b.failures = 0
	}
	if b.onStateChange != nil {
		b.onStateChange(from, to)
	}
}

func (b *breaker) current() breakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
