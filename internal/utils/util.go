package utils

import (
	"sync"
	"time"
)

// Debouncer provides a way to debounce function calls
type Debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
}

// Debounce calls the provided function after the specified duration,
// canceling any previous pending calls
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.schedule(duration, fn)
}

// schedule replaces the pending timer. The caller holds the mutex.
func (d *Debouncer) schedule(duration time.Duration, fn func()) {
	if d.timer != nil {
		d.timer.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		// A newer call may already have replaced this timer.
		if d.timer == t {
			d.timer = nil
		}
		d.mutex.Unlock()
		fn()
	})
	d.timer = t
}

// Stop cancels a pending call, if any. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// Pending reports whether a call is scheduled but has not fired yet.
func (d *Debouncer) Pending() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.timer != nil
}
