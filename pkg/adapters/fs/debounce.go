package fs

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of events per key. Editors and atomic
// renames produce several notifications per logical change; only the
// last one within the window fires.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fire for the key, resetting any pending timer for it.
func (d *debouncer) add(key string, fire func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		if t.Stop() {
			d.wg.Done()
		}
	}
	d.wg.Add(1)
	d.timers[key] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			fire()
		}
	})
}

// stopAndWait rejects new events and waits for in-flight timers, up to
// the given timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
