package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "studyclock/internal/modules/session/dto"
	timerdto "studyclock/internal/modules/timer/dto"
	"studyclock/internal/ui/components"
)

type fakeTimer struct {
	state    timerdto.StateOutput
	observer func(timerdto.StateOutput)
	starts   int
	pauses   int
	resets   int
}

func (f *fakeTimer) Start() timerdto.StateOutput {
	f.starts++
	f.state.Running = true
	return f.state
}

func (f *fakeTimer) Pause() timerdto.StateOutput {
	f.pauses++
	f.state.Running = false
	return f.state
}

func (f *fakeTimer) Reset() timerdto.StateOutput {
	f.resets++
	f.state = timerdto.StateOutput{Phase: "study", Remaining: 1500, Total: 1500, Clock: "25:00"}
	return f.state
}

func (f *fakeTimer) State() timerdto.StateOutput { return f.state }

func (f *fakeTimer) Subscribe(fn func(timerdto.StateOutput)) func() {
	f.observer = fn
	return func() { f.observer = nil }
}

type fakeSessions struct {
	records []sessiondto.RecordOutput
	deleted []int
	cleared int
}

func (f *fakeSessions) History(context.Context) ([]sessiondto.RecordOutput, error) {
	return f.records, nil
}

func (f *fakeSessions) Delete(_ context.Context, index int) error {
	f.deleted = append(f.deleted, index)
	return nil
}

func (f *fakeSessions) Clear(context.Context) error {
	f.cleared++
	return nil
}

func (f *fakeSessions) Stats(context.Context, string) (sessiondto.SummaryOutput, error) {
	total := 0
	for _, r := range f.records {
		total += r.Duration
	}
	return sessiondto.SummaryOutput{Total: total}, nil
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel() (Model, *fakeTimer, *fakeSessions) {
	timer := &fakeTimer{state: timerdto.StateOutput{Phase: "study", Remaining: 1500, Total: 1500, Clock: "25:00"}}
	sessions := &fakeSessions{records: []sessiondto.RecordOutput{
		{Index: 1, Date: "2026-03-02", Time: "10:00:00", Duration: 25},
		{Index: 0, Date: "2026-03-01", Time: "09:00:00", Duration: 20},
	}}
	m := NewModel(timer, sessions)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	updated, _ = m.Update(m.loadHistoryCmd()())
	return updated.(Model), timer, sessions
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestTimerKeysDriveTimer(t *testing.T) {
	t.Parallel()
	m, timer, _ := newTestModel()
	m, _ = press(t, m, runeKey('s'))
	if timer.starts != 1 || !m.timerView.State().Running {
		t.Fatalf("expected start, starts=%d", timer.starts)
	}
	m, _ = press(t, m, runeKey('p'))
	m, _ = press(t, m, runeKey('r'))
	if timer.pauses != 1 || timer.resets != 1 {
		t.Fatalf("expected pause and reset, got %d/%d", timer.pauses, timer.resets)
	}
	if m.timerView.State().Running {
		t.Fatalf("expected stopped after reset")
	}
}

func TestDeclinedDeleteChangesNothing(t *testing.T) {
	t.Parallel()
	m, _, sessions := newTestModel()
	m, _ = press(t, m, runeKey('d'))
	if !m.confirm.Visible() {
		t.Fatalf("expected confirmation prompt")
	}
	m, cmd := press(t, m, runeKey('n'))
	if cmd == nil {
		t.Fatalf("expected cancel message")
	}
	m, cmd = press(t, m, cmd())
	if cmd != nil || len(sessions.deleted) != 0 || m.status != "cancelled" {
		t.Fatalf("declined delete must not touch history, deleted=%v status=%q", sessions.deleted, m.status)
	}
}

func TestConfirmedDeleteUsesStoredIndex(t *testing.T) {
	t.Parallel()
	m, _, sessions := newTestModel()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, runeKey('d'))
	m, cmd := press(t, m, runeKey('y'))
	accepted, ok := cmd().(components.ConfirmAcceptMsg)
	if !ok {
		t.Fatalf("expected accept message")
	}
	_, cmd = press(t, m, accepted)
	if _, ok := cmd().(deletedMsg); !ok {
		t.Fatalf("expected delete command")
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != 0 {
		t.Fatalf("expected stored index 0 deleted, got %v", sessions.deleted)
	}
}

func TestConfirmedDeleteAll(t *testing.T) {
	t.Parallel()
	m, _, sessions := newTestModel()
	m, _ = press(t, m, runeKey('D'))
	m, cmd := press(t, m, runeKey('y'))
	_, cmd = press(t, m, cmd())
	cmd()
	if sessions.cleared != 1 {
		t.Fatalf("expected clear, got %d", sessions.cleared)
	}
}

func TestPhaseChangeReloadsHistory(t *testing.T) {
	t.Parallel()
	m, timer, _ := newTestModel()
	if m.today != 45 {
		t.Fatalf("expected today total 45, got %d", m.today)
	}
	timer.observer(timerdto.StateOutput{Phase: "study", Remaining: 1499, Total: 1500, Clock: "24:59", Running: true})
	msg := m.waitForState()()
	m, cmd := press(t, m, msg)
	if m.timerView.State().Clock != "24:59" || cmd == nil {
		t.Fatalf("expected state applied and listener re-armed")
	}

	timer.observer(timerdto.StateOutput{Phase: "break", Remaining: 300, Total: 300, Clock: "5:00"})
	m, cmd = press(t, m, m.waitForState()())
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) != 2 {
		t.Fatalf("expected listener and history reload batched on phase change, got %#v", cmd())
	}
	if m.status != "break phase" {
		t.Fatalf("unexpected status %q", m.status)
	}
}
