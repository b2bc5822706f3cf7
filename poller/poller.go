// Package poller keeps a spectator in sync with the tournament server by
// fetching a full snapshot on a fixed cadence.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"termsuji-spectate/types"
)

const (
	DefaultInterval      = 500 * time.Millisecond
	DefaultFailThreshold = 3
)

// Status is the connectivity shown to the user.
type Status int

const (
	Connecting Status = iota
	Connected
	Disconnected
)

func (s Status) String() string {
	switch s {
	case Connected:
		return "Live"
	case Disconnected:
		return "Reconnecting…"
	default:
		return "Connecting…"
	}
}

// Loop polls a Fetcher forever on a fixed interval.
//
// Fetches run in their own goroutines so a slow response never delays the
// next tick. Every fetch is tagged with a sequence number; a response older
// than the last one applied is dropped. Callbacks are handed to the
// dispatch function in the order results are accepted and must not call
// back into the Loop.
type Loop struct {
	fetcher   Fetcher
	clock     clockwork.Clock
	interval  time.Duration
	timeout   time.Duration
	threshold int
	apply     func(*types.TournamentState)
	onStatus  func(Status)
	dispatch  func(func())

	issued atomic.Uint64
	wg     sync.WaitGroup

	mu       sync.Mutex
	applied  uint64
	failures int
	status   Status
	pending  []func()
	draining bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the real clock, mostly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithInterval sets the polling cadence.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithFailThreshold sets how many consecutive failures are tolerated
// before the status becomes Disconnected.
func WithFailThreshold(n int) Option {
	return func(l *Loop) {
		if n >= 0 {
			l.threshold = n
		}
	}
}

// WithApply sets the function receiving every accepted snapshot.
func WithApply(f func(*types.TournamentState)) Option {
	return func(l *Loop) { l.apply = f }
}

// WithStatus sets the function receiving connectivity changes.
func WithStatus(f func(Status)) Option {
	return func(l *Loop) { l.onStatus = f }
}

// WithDispatch sets how callbacks are run, e.g. on a UI event loop.
func WithDispatch(f func(func())) Option {
	return func(l *Loop) { l.dispatch = f }
}

// New creates a Loop polling f.
func New(f Fetcher, opts ...Option) *Loop {
	l := &Loop{
		fetcher:   f,
		clock:     clockwork.NewRealClock(),
		interval:  DefaultInterval,
		threshold: DefaultFailThreshold,
		apply:     func(*types.TournamentState) {},
		onStatus:  func(Status) {},
		dispatch:  func(f func()) { f() },
		status:    Connecting,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.timeout = 4 * l.interval
	return l
}

// Run reports Connecting, polls once immediately and then on every tick
// until ctx is cancelled. Failures never stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	l.status = Connecting
	l.enqueue(func() { l.onStatus(Connecting) })
	l.mu.Unlock()
	l.drain()

	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", l.interval).Int("fail_threshold", l.threshold).Msg("polling started")
	l.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			l.wg.Wait()
			log.Info().Msg("polling stopped")
			return nil
		case <-ticker.Chan():
			l.poll(ctx)
		}
	}
}

func (l *Loop) poll(ctx context.Context) {
	seq := l.issued.Add(1)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fctx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()
		state, err := l.fetcher.Fetch(fctx)
		if ctx.Err() != nil {
			return
		}
		l.handle(seq, state, err)
	}()
}

// handle records the outcome of fetch number seq.
func (l *Loop) handle(seq uint64, state *types.TournamentState, err error) {
	l.mu.Lock()
	l.record(seq, state, err)
	l.mu.Unlock()
	l.drain()
}

// record updates the counters and queues callbacks. mu must be held.
func (l *Loop) record(seq uint64, state *types.TournamentState, err error) {
	if seq < l.applied {
		log.Debug().Uint64("seq", seq).Uint64("applied", l.applied).Msg("dropping stale poll result")
		return
	}

	if err != nil {
		l.failures++
		log.Debug().Err(err).Uint64("seq", seq).Int("failures", l.failures).Msg("poll failed")
		if l.failures > l.threshold && l.status != Disconnected {
			log.Warn().Err(err).Int("failures", l.failures).Msg("server unreachable")
			l.setStatus(Disconnected)
		}
		return
	}

	l.applied = seq
	if l.failures > 0 {
		log.Info().Int("failures", l.failures).Msg("server reachable again")
	}
	l.failures = 0
	if l.status != Connected {
		l.setStatus(Connected)
	}
	l.enqueue(func() { l.apply(state) })
}

// setStatus must be called with mu held.
func (l *Loop) setStatus(s Status) {
	l.status = s
	l.enqueue(func() { l.onStatus(s) })
}

// enqueue must be called with mu held.
func (l *Loop) enqueue(f func()) {
	l.pending = append(l.pending, f)
}

// drain hands queued callbacks to dispatch without holding mu, so a
// dispatch that blocks never stalls Status or Failures. Only one goroutine
// drains at a time, which keeps callbacks in the order they were queued.
func (l *Loop) drain() {
	l.mu.Lock()
	if l.draining {
		l.mu.Unlock()
		return
	}
	l.draining = true
	for len(l.pending) > 0 {
		batch := l.pending
		l.pending = nil
		l.mu.Unlock()
		for _, f := range batch {
			l.dispatch(f)
		}
		l.mu.Lock()
	}
	l.draining = false
	l.mu.Unlock()
}

// Status returns the current connectivity.
func (l *Loop) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Failures returns the number of consecutive failed polls.
func (l *Loop) Failures() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures
}
