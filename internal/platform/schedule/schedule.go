// Package schedule provides the single timeline that timer callbacks run on.
package schedule

import (
	"sync"
	"time"
)

// Handle is a scheduled task that can be cancelled. Stop is idempotent.
type Handle interface {
	Stop()
}

// Scheduler creates periodic and one-shot tasks.
type Scheduler interface {
	Every(d time.Duration, fn func()) Handle
	After(d time.Duration, fn func()) Handle
}

// Real schedules on the runtime timers.
type Real struct{}

func (Real) After(d time.Duration, fn func()) Handle {
	return realTimer{t: time.AfterFunc(d, fn)}
}

func (Real) Every(d time.Duration, fn func()) Handle {
	ticker := time.NewTicker(d)
	h := &realTicker{ticker: ticker, done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-h.done:
				return
			}
		}
	}()
	return h
}

type realTimer struct {
	t *time.Timer
}

func (r realTimer) Stop() { r.t.Stop() }

type realTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// Stop does not wait for an in-flight callback; callers discard stale fires.
func (r *realTicker) Stop() {
	r.once.Do(func() {
		r.ticker.Stop()
		close(r.done)
	})
}
