package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := NewCircuitBreaker("gemini", 3, 100*time.Millisecond)

	err := cb.Execute(func() error { return nil })
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cb.CurrentState() != StateClosed {
		t.Errorf("Expected Closed, got %s", cb.CurrentState())
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker("gemini", 3, 100*time.Millisecond)
	testErr := errors.New("fail")

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return testErr })
	}

	if cb.CurrentState() != StateOpen {
		t.Errorf("Expected Open after 3 failures, got %s", cb.CurrentState())
	}

	// Should reject calls when open
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Error("fn must not run while the circuit is open")
	}
}

func TestCircuitBreaker_SuccessResetsCount(t *testing.T) {
	cb := NewCircuitBreaker("openai", 2, time.Minute)
	testErr := errors.New("fail")

	_ = cb.Execute(func() error { return testErr })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return testErr })

	if cb.CurrentState() != StateClosed {
		t.Errorf("non-consecutive failures should not open the circuit, got %s", cb.CurrentState())
	}
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	cb := NewCircuitBreaker("gemini", 2, 50*time.Millisecond)
	testErr := errors.New("fail")

	// Trip the breaker
	_ = cb.Execute(func() error { return testErr })
	_ = cb.Execute(func() error { return testErr })

	if cb.CurrentState() != StateOpen {
		t.Fatalf("Expected Open, got %s", cb.CurrentState())
	}

	// Wait for timeout
	time.Sleep(60 * time.Millisecond)

	// Next call should transition to HalfOpen and succeed
	err := cb.Execute(func() error { return nil })
	if err != nil {
		t.Fatalf("Expected success in HalfOpen, got %v", err)
	}

	if cb.CurrentState() != StateClosed {
		t.Errorf("Expected Closed after successful HalfOpen call, got %s", cb.CurrentState())
	}
}

func TestCircuitBreaker_HalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker("gemini", 3, 50*time.Millisecond)
	testErr := errors.New("fail")

	// Trip
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return testErr })
	}

	// Wait for timeout
	time.Sleep(60 * time.Millisecond)

	// A single failure in HalfOpen reopens the circuit
	_ = cb.Execute(func() error { return testErr })

	if cb.CurrentState() != StateOpen {
		t.Errorf("Expected Open after HalfOpen failure, got %s", cb.CurrentState())
	}
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	cb := NewCircuitBreaker("mistral", 1, 10*time.Millisecond)

	var (
		mu          sync.Mutex
		transitions []string
	)
	cb.OnStateChange(func(name string, from, to State) {
		mu.Lock()
		defer mu.Unlock()
		transitions = append(transitions, name+":"+from.String()+"->"+to.String())
	})

	_ = cb.Execute(func() error { return errors.New("fail") })
	time.Sleep(20 * time.Millisecond)
	_ = cb.Execute(func() error { return nil })

	want := []string{
		"mistral:closed->open",
		"mistral:open->half_open",
		"mistral:half_open->closed",
	}
	mu.Lock()
	defer mu.Unlock()
	if len(transitions) != len(want) {
		t.Fatalf("got transitions %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d = %s, want %s", i, transitions[i], want[i])
		}
	}
}

func TestCircuitBreaker_ExecuteContextIgnoresCallerCancel(t *testing.T) {
	cb := NewCircuitBreaker("gemini", 2, time.Minute)

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		err := cb.ExecuteContext(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return ctx.Err()
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("call %d: expected context.Canceled, got %v", i, err)
		}
	}
	if cb.CurrentState() != StateClosed {
		t.Fatalf("expected closed after caller cancels, got %s", cb.CurrentState())
	}

	// Deadline expiry is the backend being slow and still counts.
	for i := 0; i < 2; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		_ = cb.ExecuteContext(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		cancel()
	}
	if cb.CurrentState() != StateOpen {
		t.Errorf("expected open after two deadline failures, got %s", cb.CurrentState())
	}
}
