package schedule

import (
	"sync"
	"time"
)

// Manual is a virtual timeline for tests. It implements both Scheduler and
// clock.Clock; time only moves on Advance, and due callbacks run
// synchronously on the caller's goroutine in due order.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	owner   *Manual
	id      int
	due     time.Time
	period  time.Duration
	fn      func()
	stopped bool
}

func (t *manualTask) Stop() {
	t.owner.mu.Lock()
	t.stopped = true
	t.owner.mu.Unlock()
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(d time.Duration, fn func()) Handle {
	return m.add(d, d, fn)
}

func (m *Manual) After(d time.Duration, fn func()) Handle {
	return m.add(d, 0, fn)
}

// Active reports how many tasks are still scheduled.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every task that falls due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		next := m.nextDueLocked(target)
		if next == nil {
			break
		}
		m.now = next.due
		if next.period > 0 {
			next.due = next.due.Add(next.period)
		} else {
			next.stopped = true
		}
		fn := next.fn
		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}
	m.now = target
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.tasks = live
	m.mu.Unlock()
}

func (m *Manual) add(delay, period time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{owner: m, id: m.seq, due: m.now.Add(delay), period: period, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

func (m *Manual) nextDueLocked(limit time.Time) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.stopped || t.due.After(limit) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.id < best.id) {
			best = t
		}
	}
	return best
}
