package reward

import (
	"sync"
	"time"
)

// Result is a delivered reward estimate together with the inputs it was
// computed from.
type Result struct {
	Achievement float64
	Percent     float64
	Estimated   float64
	Err         error
}

// Debouncer coalesces rapid estimate requests. Each Submit supersedes the
// pending one; fn only ever sees the result of the most recent input.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(Result)
	timer   *time.Timer
	seq     uint64
	pending *request
	stopped bool
}

type request struct {
	seq         uint64
	achievement float64
	percent     float64
}

// NewDebouncer returns a Debouncer that calls fn delay after the last Submit.
// fn runs on its own goroutine.
func NewDebouncer(delay time.Duration, fn func(Result)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Submit schedules an estimate for the given inputs, discarding any request
// that has not fired yet.
func (d *Debouncer) Submit(achievement, percent float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.seq++
	d.pending = &request{seq: d.seq, achievement: achievement, percent: percent}

	if d.timer != nil {
		d.timer.Stop()
	}
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq)
	})
}

// Flush runs the pending request immediately, if there is one.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	seq := d.seq
	d.mu.Unlock()

	d.fire(seq)
}

// Stop drops the pending request. Later Submits are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire delivers the pending request if it is still the one numbered seq.
func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	req := d.pending
	if req == nil || req.seq != seq || d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()

	estimated, err := Calculate(req.achievement, req.percent)
	d.fn(Result{
		Achievement: req.achievement,
		Percent:     req.percent,
		Estimated:   estimated,
		Err:         err,
	})
}
