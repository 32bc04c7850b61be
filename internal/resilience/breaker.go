// Package resilience provides a circuit breaker for marketplace API hosts.
// A host that keeps failing gets short-circuited for a cool-off period so a
// broken upstream cannot stall a whole aggregation run on retries.
package resilience

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
)

// State represents the state of a breaker.
type State int

const (
	// StateClosed is the normal operating state — requests flow through.
	StateClosed State = iota
	// StateOpen means too many failures — requests are rejected immediately.
	StateOpen
	// StateHalfOpen allows a single probe request to test recovery.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen is returned when a request is rejected because the breaker is open.
var ErrOpen = eris.New("host circuit open")

// Config controls breaker behavior.
type Config struct {
	// FailureThreshold is the number of consecutive failures before opening
	// the breaker. Default: 5.
	FailureThreshold int

	// CoolOff is how long the breaker stays open before allowing a probe.
	// Default: 30s.
	CoolOff time.Duration

	// OnStateChange is called when the breaker transitions between states.
	OnStateChange func(from, to State)
}

// Breaker tracks consecutive failures for one upstream host.
type Breaker struct {
	cfg Config

	mu                  sync.Mutex
	state               State
	consecutiveFailures int
	lastFailure         time.Time

	// nowFunc allows test injection of time.
	nowFunc func() time.Time
}

// NewBreaker creates a breaker with the given config.
func NewBreaker(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.CoolOff <= 0 {
		cfg.CoolOff = 30 * time.Second
	}
	return &Breaker{
		cfg:     cfg,
		state:   StateClosed,
		nowFunc: time.Now,
	}
}

// Allow reports whether a request may proceed. An open breaker past its
// cool-off transitions to half-open and admits one probe.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.nowFunc().Sub(b.lastFailure) >= b.cfg.CoolOff {
			b.transition(StateHalfOpen)
			return nil
		}
		return ErrOpen
	default:
		return nil
	}
}

// Record feeds the outcome of an admitted request back into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		if b.state != StateClosed {
			b.transition(StateClosed)
		}
		b.consecutiveFailures = 0
		return
	}

	b.consecutiveFailures++
	b.lastFailure = b.nowFunc()

	switch b.state {
	case StateClosed:
		if b.consecutiveFailures >= b.cfg.FailureThreshold {
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		// A failed probe reopens immediately.
		b.transition(StateOpen)
	}
}

// State returns the current breaker state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.nowFunc().Sub(b.lastFailure) >= b.cfg.CoolOff {
		return StateHalfOpen
	}
	return b.state
}

// Reset forces the breaker back to closed.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateClosed {
		b.transition(StateClosed)
	}
	b.consecutiveFailures = 0
}

func (b *Breaker) transition(to State) {
	from := b.state
	b.state = to
	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}

// HostBreakers manages one breaker per upstream host.
type HostBreakers struct {
	mu       sync.RWMutex
	breakers map[string]*Breaker
	cfg      Config
}

// NewHostBreakers creates a registry of per-host breakers.
func NewHostBreakers(cfg Config) *HostBreakers {
	return &HostBreakers{
		breakers: make(map[string]*Breaker),
		cfg:      cfg,
	}
}

// Get returns the breaker for host, creating one if needed.
func (hb *HostBreakers) Get(host string) *Breaker {
	hb.mu.RLock()
	b, ok := hb.breakers[host]
	hb.mu.RUnlock()
	if ok {
		return b
	}

	hb.mu.Lock()
	defer hb.mu.Unlock()
	if b, ok = hb.breakers[host]; ok {
		return b
	}
	b = NewBreaker(hb.cfg)
	hb.breakers[host] = b
	return b
}

// States returns a snapshot of all breaker states.
func (hb *HostBreakers) States() map[string]State {
	hb.mu.RLock()
	defer hb.mu.RUnlock()
	states := make(map[string]State, len(hb.breakers))
	for host, b := range hb.breakers {
		states[host] = b.State()
	}
	return states
}
