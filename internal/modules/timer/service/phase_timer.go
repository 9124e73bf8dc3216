package service

import (
	"context"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"studyclock/internal/modules/timer/domain"
	timerout "studyclock/internal/modules/timer/port/out"
	"studyclock/internal/platform/clock"
	"studyclock/internal/platform/schedule"
)

const (
	TickInterval   = time.Second
	AutoStartDelay = time.Second
)

// PhaseTimer drives the study/break cycle. It owns exactly one task slot:
// either the running tick or the pending auto-start of the next phase.
// Every callback carries the generation it was scheduled under and is
// dropped once that slot has been cancelled.
type PhaseTimer struct {
	mu        sync.Mutex
	durations domain.Durations
	scheduler schedule.Scheduler
	clock     clock.Clock
	hook      timerout.CompletionHook
	log       hclog.Logger
	state     domain.State
	task      schedule.Handle
	gen       uint64

	// notifyMu is taken before mu is released so observers see emissions
	// in order.
	notifyMu  sync.Mutex
	obsMu     sync.Mutex
	observers []observer
	nextObsID int
}

type observer struct {
	id int
	fn func(domain.State)
}

func NewPhaseTimer(durations domain.Durations, scheduler schedule.Scheduler, clk clock.Clock, hook timerout.CompletionHook, log hclog.Logger) (*PhaseTimer, error) {
	if err := durations.Validate(); err != nil {
		return nil, err
	}
	return &PhaseTimer{
		durations: durations,
		scheduler: scheduler,
		clock:     clk,
		hook:      hook,
		log:       log,
		state:     domain.Initial(durations),
	}, nil
}

func (t *PhaseTimer) Durations() domain.Durations {
	return t.durations
}

// Start is a no-op while running.
func (t *PhaseTimer) Start() domain.State {
	t.mu.Lock()
	if t.state.Running {
		s := t.state.Clone()
		t.mu.Unlock()
		return s
	}
	t.startLocked()
	t.log.Debug("timer started", "phase", t.state.Phase.String(), "remaining", t.state.Remaining)
	return t.emitAndUnlock(t.state.Clone())
}

// Pause keeps the remaining time and the phase start timestamp. When the
// timer is idle it only cancels a pending auto-start.
func (t *PhaseTimer) Pause() domain.State {
	t.mu.Lock()
	if !t.state.Running {
		if t.task != nil {
			t.cancelLocked()
			t.log.Debug("pending auto-start cancelled")
		}
		s := t.state.Clone()
		t.mu.Unlock()
		return s
	}
	t.cancelLocked()
	t.state.Running = false
	t.log.Debug("timer paused", "phase", t.state.Phase.String(), "remaining", t.state.Remaining)
	return t.emitAndUnlock(t.state.Clone())
}

func (t *PhaseTimer) Reset() domain.State {
	t.mu.Lock()
	t.cancelLocked()
	t.state = domain.Initial(t.durations)
	t.log.Debug("timer reset")
	return t.emitAndUnlock(t.state.Clone())
}

func (t *PhaseTimer) Snapshot() domain.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Close cancels whatever task is scheduled. The timer stays usable.
func (t *PhaseTimer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.state.Running = false
}

// Subscribe registers fn for every emitted state and returns its removal func.
func (t *PhaseTimer) Subscribe(fn func(domain.State)) func() {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.nextObsID++
	id := t.nextObsID
	t.observers = append(t.observers, observer{id: id, fn: fn})
	return func() {
		t.obsMu.Lock()
		defer t.obsMu.Unlock()
		for i, o := range t.observers {
			if o.id == id {
				t.observers = append(t.observers[:i:i], t.observers[i+1:]...)
				return
			}
		}
	}
}

func (t *PhaseTimer) startLocked() {
	t.state.Running = true
	if t.state.Phase == domain.PhaseStudy && t.state.StartedAt == nil {
		now := t.clock.Now()
		t.state.StartedAt = &now
	}
	t.cancelLocked()
	gen := t.gen
	t.task = t.scheduler.Every(TickInterval, func() { t.tick(gen) })
}

func (t *PhaseTimer) tick(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.state.Running {
		t.mu.Unlock()
		return
	}
	t.state.Remaining--
	emitted := []domain.State{t.state.Clone()}
	if t.state.Remaining <= 0 {
		t.finishLocked()
		emitted = append(emitted, t.state.Clone())
	}
	t.emitAndUnlock(emitted...)
}

// finishLocked ends the current phase: it reports a finished study phase,
// flips to the other phase and schedules its auto-start.
func (t *PhaseTimer) finishLocked() {
	t.cancelLocked()
	t.state.Running = false
	finished := t.state.Phase
	if finished == domain.PhaseStudy && t.hook != nil {
		if err := t.hook.StudyPhaseCompleted(context.Background(), t.state.StartedAt, t.durations.StudyMinutes); err != nil {
			t.log.Error("recording study session failed", "error", err)
		}
	}
	t.state.StartedAt = nil
	t.state.Phase = finished.Next()
	t.state.Remaining = t.durations.Seconds(t.state.Phase)
	t.log.Info("phase finished", "finished", finished.String(), "next", t.state.Phase.String())

	gen := t.gen
	t.task = t.scheduler.After(AutoStartDelay, func() { t.autoStart(gen) })
}

func (t *PhaseTimer) autoStart(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.task = nil
	if t.state.Running {
		t.mu.Unlock()
		return
	}
	t.startLocked()
	t.emitAndUnlock(t.state.Clone())
}

// cancelLocked stops the task in the slot and invalidates its callbacks.
func (t *PhaseTimer) cancelLocked() {
	if t.task != nil {
		t.task.Stop()
		t.task = nil
	}
	t.gen++
}

// emitAndUnlock releases mu and delivers states to observers in order.
// It returns the last state.
func (t *PhaseTimer) emitAndUnlock(states ...domain.State) domain.State {
	t.notifyMu.Lock()
	t.mu.Unlock()
	defer t.notifyMu.Unlock()

	t.obsMu.Lock()
	observers := append([]observer(nil), t.observers...)
	t.obsMu.Unlock()
	for _, s := range states {
		for _, o := range observers {
			o.fn(s.Clone())
		}
	}
	return states[len(states)-1]
}
