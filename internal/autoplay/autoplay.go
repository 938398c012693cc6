// Package autoplay advances slides on a fixed period.
package autoplay

import (
	"sync"
	"time"
)

// DefaultInterval is the time between automatic advances.
const DefaultInterval = 3 * time.Second

// Timer calls a function on every tick while running. Start and Stop are
// idempotent; there is never more than one ticker.
//
// onTick runs on the timer's goroutine and must not block or call Stop.
type Timer struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	onTick   func()

	ticker Ticker
	stop   chan struct{}
	done   chan struct{}
}

// New creates a stopped Timer. A nil clock uses RealClock.
func New(interval time.Duration, clock Clock, onTick func()) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Timer{clock: clock, interval: interval, onTick: onTick}
}

// Interval returns the tick period.
func (t *Timer) Interval() time.Duration { return t.interval }

// Running reports whether the timer is started.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticker != nil
}

// Start begins ticking. It reports false if the timer was already running.
func (t *Timer) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startLocked()
}

// Stop cancels ticking and waits for the tick goroutine to exit, so no
// callback fires after Stop returns. It reports false if already stopped.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	done := t.stopLocked()
	t.mu.Unlock()
	if done == nil {
		return false
	}
	<-done
	return true
}

// Toggle flips between running and stopped and returns the new state.
func (t *Timer) Toggle() bool {
	t.mu.Lock()
	if t.ticker == nil {
		t.startLocked()
		t.mu.Unlock()
		return true
	}
	done := t.stopLocked()
	t.mu.Unlock()
	<-done
	return false
}

func (t *Timer) startLocked() bool {
	if t.ticker != nil {
		return false
	}
	t.ticker = t.clock.NewTicker(t.interval)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.run(t.ticker, t.stop, t.done)
	return true
}

// stopLocked returns the channel closed when the tick goroutine exits, or nil
// if the timer was not running.
func (t *Timer) stopLocked() chan struct{} {
	if t.ticker == nil {
		return nil
	}
	t.ticker.Stop()
	close(t.stop)
	done := t.done
	t.ticker, t.stop, t.done = nil, nil, nil
	return done
}

func (t *Timer) run(ticker Ticker, stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			select {
			case <-stop:
				return
			default:
			}
			t.onTick()
		}
	}
}
