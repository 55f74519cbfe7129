package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Failing, reject calls
	StateHalfOpen              // Probing whether the backend recovered
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker guards one backend.
// Transitions: Closed → Open (after failThreshold consecutive failures)
//
//	Open → HalfOpen (after openTimeout expires)
//	HalfOpen → Closed (on success) or Open (on failure)
type CircuitBreaker struct {
	name          string
	mu            sync.Mutex
	state         State
	failCount     int
	failThreshold int
	openTimeout   time.Duration
	openedAt      time.Time
	onChange      func(name string, from, to State)
}

// NewCircuitBreaker creates a circuit breaker for the named backend.
func NewCircuitBreaker(name string, failThreshold int, openTimeout time.Duration) *CircuitBreaker {
	if failThreshold < 1 {
		failThreshold = 1
	}
	return &CircuitBreaker{
		name:          name,
		state:         StateClosed,
		failThreshold: failThreshold,
		openTimeout:   openTimeout,
	}
}

// OnStateChange registers a callback invoked, outside the lock, on every transition.
func (cb *CircuitBreaker) OnStateChange(fn func(name string, from, to State)) {
	cb.mu.Lock()
	cb.onChange = fn
	cb.mu.Unlock()
}

// Name returns the guarded backend id.
func (cb *CircuitBreaker) Name() string { return cb.name }

// Execute runs fn through the circuit breaker.
// Returns ErrCircuitOpen if the circuit is open and the timeout hasn't elapsed.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	return cb.execute(fn, nil)
}

// ExecuteContext runs fn with ctx through the circuit breaker. A failure
// after the caller cancelled ctx leaves the breaker untouched; an expired
// deadline still counts as a failure.
func (cb *CircuitBreaker) ExecuteContext(ctx context.Context, fn func(ctx context.Context) error) error {
	return cb.execute(func() error { return fn(ctx) }, func(error) bool {
		return errors.Is(ctx.Err(), context.Canceled)
	})
}

func (cb *CircuitBreaker) execute(fn func() error, ignore func(error) bool) error {
	cb.mu.Lock()

	switch cb.state {
	case StateOpen:
		if time.Since(cb.openedAt) > cb.openTimeout {
			notify := cb.transition(StateHalfOpen)
			cb.mu.Unlock()
			notify()
			return cb.tryCall(fn, ignore)
		}
		cb.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrCircuitOpen, cb.name)

	default: // Closed, HalfOpen
		cb.mu.Unlock()
		return cb.tryCall(fn, ignore)
	}
}

func (cb *CircuitBreaker) tryCall(fn func() error, ignore func(error) bool) error {
	err := fn()
	if err != nil && ignore != nil && ignore(err) {
		return err
	}

	cb.mu.Lock()
	var notify func()
	if err != nil {
		cb.failCount++
		if cb.state == StateHalfOpen || cb.failCount >= cb.failThreshold {
			cb.openedAt = time.Now()
			notify = cb.transition(StateOpen)
		}
	} else {
		// Success: reset
		cb.failCount = 0
		notify = cb.transition(StateClosed)
	}
	cb.mu.Unlock()

	if notify != nil {
		notify()
	}
	return err
}

// transition must be called with mu held. The returned func fires the callback.
func (cb *CircuitBreaker) transition(to State) func() {
	from := cb.state
	cb.state = to
	fn := cb.onChange
	if from == to || fn == nil {
		return func() {}
	}
	name := cb.name
	return func() { fn(name, from, to) }
}

// CurrentState returns the current state of the circuit breaker.
func (cb *CircuitBreaker) CurrentState() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
