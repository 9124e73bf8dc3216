package timer_test

import (
	"strings"
	"testing"

	timerdto "studyclock/internal/modules/timer/dto"
	"studyclock/internal/ui/views/timer"
)

func TestElapsedFraction(t *testing.T) {
	t.Parallel()
	m := timer.New(timerdto.StateOutput{Phase: "study", Remaining: 1500, Total: 1500, Clock: "25:00"})
	if got := m.Elapsed(); got != 0 {
		t.Fatalf("expected 0 at start, got %v", got)
	}
	m.SetState(timerdto.StateOutput{Phase: "study", Remaining: 375, Total: 1500, Clock: "6:15", Running: true})
	if got := m.Elapsed(); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
	m.SetState(timerdto.StateOutput{Phase: "break"})
	if got := m.Elapsed(); got != 0 {
		t.Fatalf("expected 0 without a total, got %v", got)
	}
}

func TestViewShowsClockPhaseAndToday(t *testing.T) {
	t.Parallel()
	m := timer.New(timerdto.StateOutput{Phase: "break", Remaining: 299, Total: 300, Clock: "4:59", Running: true})
	m.SetWidth(40)
	m.SetTodayTotal(50)
	out := m.View()
	for _, want := range []string{"BREAK", "4:59", "50", "p pause"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}
