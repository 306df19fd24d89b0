package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// MaxFailures trips the breaker after this many consecutive failures
	MaxFailures uint32
	// Cooldown is how long the breaker stays open before probing again
	Cooldown time.Duration
	// Probes is the number of successful half-open calls needed to close
	Probes uint32
	// IsFailure decides whether an error counts against the breaker.
	// Context cancellation never does.
	IsFailure func(err error) bool
	// OnStateChange is called whenever the state changes
	OnStateChange func(name string, from State, to State)

	now func() time.Time
}

// Counts holds the statistics for the current breaker generation
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// Breaker guards calls to an unreliable dependency, such as the local
// language model, so a dead upstream fails fast instead of stalling requests.
type Breaker struct {
	name     string
	settings Settings

	mu       sync.Mutex
	state    State
	counts   Counts
	openedAt time.Time
}

// New creates a new circuit breaker with the given settings
func New(name string, settings Settings) *Breaker {
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 5
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = 30 * time.Second
	}
	if settings.Probes == 0 {
		settings.Probes = 1
	}
	if settings.IsFailure == nil {
		settings.IsFailure = func(err error) bool { return err != nil }
	}
	if settings.now == nil {
		settings.now = time.Now
	}

	return &Breaker{name: name, settings: settings, state: StateClosed}
}

func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state of the circuit breaker
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState()
}

// Counts returns a copy of the internal counts
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

// Do runs fn if the breaker admits it and records the outcome.
func (b *Breaker) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.beforeRequest(); err != nil {
		return err
	}

	defer func() {
		if e := recover(); e != nil {
			b.afterRequest(false)
			panic(e)
		}
	}()

	err := fn(ctx)
	b.afterRequest(!b.countsAsFailure(err))
	return err
}

func (b *Breaker) countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return b.settings.IsFailure(err)
}

func (b *Breaker) beforeRequest() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentState() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.counts.Requests >= b.settings.Probes {
			return ErrTooManyRequests
		}
	}

	b.counts.Requests++
	return nil
}

func (b *Breaker) afterRequest(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.currentState()
	if success {
		b.counts.TotalSuccesses++
		b.counts.ConsecutiveSuccesses++
		b.counts.ConsecutiveFailures = 0
		if state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.Probes {
			b.setState(StateClosed)
		}
		return
	}

	b.counts.TotalFailures++
	b.counts.ConsecutiveFailures++
	b.counts.ConsecutiveSuccesses = 0
	switch state {
	case StateClosed:
		if b.counts.ConsecutiveFailures >= b.settings.MaxFailures {
			b.setState(StateOpen)
		}
	case StateHalfOpen:
		b.setState(StateOpen)
	}
}

// currentState must be called with mu held.
func (b *Breaker) currentState() State {
	if b.state == StateOpen && b.settings.now().Sub(b.openedAt) >= b.settings.Cooldown {
		b.setState(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) setState(state State) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state
	b.counts = Counts{}
	if state == StateOpen {
		b.openedAt = b.settings.now()
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, prev, state)
	}
}
