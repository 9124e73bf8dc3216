package history_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "studyclock/internal/modules/session/dto"
	"studyclock/internal/ui/views/history"
)

var newestFirst = []sessiondto.RecordOutput{
	{Index: 2, Date: "2026-03-02", Time: "14:00:00", Duration: 30},
	{Index: 1, Date: "2026-03-02", Time: "10:00:00", Duration: 25},
	{Index: 0, Date: "2026-03-01", Time: "09:00:00", Duration: 20},
}

func TestSelectedCarriesStoredIndex(t *testing.T) {
	t.Parallel()
	m := history.New()
	m.SetSize(60, 20)
	m.SetRecords(newestFirst)

	got, ok := m.Selected()
	if !ok || got.Index != 2 {
		t.Fatalf("expected newest record selected first, got %+v ok=%v", got, ok)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	got, _ = m.Selected()
	if got.Index != 1 {
		t.Fatalf("expected stored index 1 after moving down, got %d", got.Index)
	}
}

func TestToggleSurvivesReload(t *testing.T) {
	t.Parallel()
	m := history.New()
	m.SetSize(60, 20)
	m.SetRecords(newestFirst)
	if m.Expanded() {
		t.Fatalf("items start collapsed")
	}
	m.Toggle()
	if !m.Expanded() {
		t.Fatalf("expected selected item expanded")
	}
	m.SetRecords(newestFirst)
	if !m.Expanded() {
		t.Fatalf("expected expansion kept across reload")
	}
	m.Toggle()
	if m.Expanded() {
		t.Fatalf("expected collapse on second toggle")
	}
}

func TestEmptyHistory(t *testing.T) {
	t.Parallel()
	m := history.New()
	m.SetRecords(nil)
	if _, ok := m.Selected(); ok {
		t.Fatalf("expected no selection")
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty list")
	}
	m.Toggle()
}
