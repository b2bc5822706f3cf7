package ui

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ResizeDelay is how long the view waits after the last resize before
// redrawing.
const ResizeDelay = 100 * time.Millisecond

// Debouncer runs fn once, delay after the last call to Trigger.
type Debouncer struct {
	clock clockwork.Clock
	delay time.Duration
	fn    func()

	mu     sync.Mutex
	timer  clockwork.Timer
	cancel chan struct{}
}

func NewDebouncer(clock clockwork.Clock, delay time.Duration, fn func()) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Debouncer{clock: clock, delay: delay, fn: fn}
}

// Trigger (re)starts the delay.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()

	t := d.clock.NewTimer(d.delay)
	cancel := make(chan struct{})
	d.timer, d.cancel = t, cancel

	go func() {
		select {
		case <-t.Chan():
			d.mu.Lock()
			current := d.cancel == cancel
			if current {
				d.timer, d.cancel = nil, nil
			}
			d.mu.Unlock()
			if current {
				d.fn()
			}
		case <-cancel:
		}
	}()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop drops a scheduled call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Debouncer) stopLocked() {
	if d.timer == nil {
		return
	}
	d.timer.Stop()
	close(d.cancel)
	d.timer, d.cancel = nil, nil
}
