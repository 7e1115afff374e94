// Package debounce defers and rate-limits calls. Timers are injectable so
// callers and tests can drive them deterministically.
package debounce

import (
	"sync"
	"time"
)

// Timer is the subset of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Debouncer or Throttle.
type Option func(*config)

type config struct {
	after AfterFunc
	now   func() time.Time
}

// WithAfterFunc replaces the timer factory.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.after = fn
		}
	}
}

// WithClock replaces the time source used by Throttle.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{after: stdAfterFunc, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Debouncer runs fn once the triggers stop arriving for delay.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	after   AfterFunc
	timer   Timer
	pending bool
	gen     uint64
}

// New returns a Debouncer for fn.
func New(delay time.Duration, fn func(), opts ...Option) *Debouncer {
	cfg := newConfig(opts)
	return &Debouncer{delay: delay, fn: fn, after: cfg.after}
}

// Trigger (re)starts the delay.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = d.after(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()
	d.fn()
}

// Cancel discards the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
	d.pending = false
}

// Flush runs the pending call now and reports whether there was one.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	d.stopLocked()
	d.gen++
	d.pending = false
	d.mu.Unlock()
	d.fn()
	return true
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttle lets fn run at most once per interval; extra calls are dropped.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func()
	now      func() time.Time
	last     time.Time
	ran      bool
}

// NewThrottle returns a Throttle for fn.
func NewThrottle(interval time.Duration, fn func(), opts ...Option) *Throttle {
	cfg := newConfig(opts)
	return &Throttle{interval: interval, fn: fn, now: cfg.now}
}

// Call runs fn unless it already ran within the interval. It reports whether
// fn ran.
func (t *Throttle) Call() bool {
	t.mu.Lock()
	now := t.now()
	if t.ran && now.Sub(t.last) < t.interval {
		t.mu.Unlock()
		return false
	}
	t.ran = true
	t.last = now
	t.mu.Unlock()
	t.fn()
	return true
}
