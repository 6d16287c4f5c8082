// Package clock provides periodic drivers for the fixed-step simulation.
// A driver only decides when a tick callback runs; the simulation itself
// contains no timing mechanism.
package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Manual is a driver fired explicitly by its host, once per host frame.
// Bubble Tea and ebiten hosts already own a frame loop and use this.
// It is not safe for concurrent use.
type Manual struct {
	tick   func()
	active bool
	fired  uint64
}

// NewManual creates an inactive manual driver.
func NewManual() *Manual {
	return &Manual{}
}

// Start arms the driver with the tick callback.
func (m *Manual) Start(tick func()) {
	m.tick = tick
	m.active = true
}

// Stop disarms the driver; Fire does nothing until the next Start.
func (m *Manual) Stop() {
	m.active = false
}

// Active reports whether the driver is armed.
func (m *Manual) Active() bool {
	return m.active
}

// Fire runs one tick if the driver is armed and reports whether it did.
func (m *Manual) Fire() bool {
	if !m.active || m.tick == nil {
		return false
	}
	m.fired++
	m.tick()
	return true
}

// Fired returns how many ticks the driver has run.
func (m *Manual) Fired() uint64 {
	return m.fired
}

// Ticker drives ticks from its own goroutine at a fixed interval.
// Ticks of one run never overlap. Stop is lock-free and idempotent, so it may
// be called from any goroutine, including from inside a tick callback. Once
// Stop has returned the loop starts no new tick; use Wait to also wait for an
// in-flight one. Start must not be called concurrently with itself.
type Ticker struct {
	interval time.Duration
	ctx      context.Context
	cur      atomic.Pointer[tickerRun]
	ticks    atomic.Uint64
}

type tickerRun struct {
	stopCh chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (r *tickerRun) stop() {
	r.once.Do(func() { close(r.stopCh) })
}

func (r *tickerRun) stopped() bool {
	select {
	case <-r.stopCh:
		return true
	default:
		return false
	}
}

// NewTicker creates a ticker bound to ctx; cancelling ctx stops it.
func NewTicker(ctx context.Context, interval time.Duration) *Ticker {
	return &Ticker{
		interval: interval,
		ctx:      ctx,
	}
}

// Start launches the tick goroutine. Starting a running ticker is a no-op.
// A stopped ticker starts afresh without waiting for the previous goroutine,
// so Start may be called from inside a tick callback. A callback still in
// flight from the stopped run can overlap the first ticks of the new one.
func (t *Ticker) Start(tick func()) {
	if prev := t.cur.Load(); prev != nil && !prev.stopped() {
		return
	}

	run := &tickerRun{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	t.cur.Store(run)
	go t.loop(tick, run)
}

func (t *Ticker) loop(tick func(), run *tickerRun) {
	defer close(run.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-run.stopCh:
			return
		case <-t.ctx.Done():
			run.stop()
			return
		case <-ticker.C:
			// Stop may have landed while we waited on the channel.
			if run.stopped() {
				return
			}
			t.ticks.Add(1)
			tick()
		}
	}
}

// Stop halts the ticker.
func (t *Ticker) Stop() {
	if run := t.cur.Load(); run != nil {
		run.stop()
	}
}

// Running reports whether the ticker is started and not stopped.
func (t *Ticker) Running() bool {
	run := t.cur.Load()
	return run != nil && !run.stopped()
}

// Wait blocks until the tick goroutine has exited.
// It must not be called from inside a tick callback.
func (t *Ticker) Wait() {
	if run := t.cur.Load(); run != nil {
		<-run.done
	}
}

// Ticks returns how many callbacks have run.
func (t *Ticker) Ticks() uint64 {
	return t.ticks.Load()
}
