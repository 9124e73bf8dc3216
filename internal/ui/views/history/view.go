package history

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	sessiondto "studyclock/internal/modules/session/dto"
	"studyclock/internal/ui/theme"
)

// ─── list item ───────────────────────────────────────────────────────────────

type recordItem struct {
	record   sessiondto.RecordOutput
	expanded bool
}

func (i recordItem) Title() string {
	return fmt.Sprintf("%s  %d min", i.record.Date, i.record.Duration)
}

func (i recordItem) Description() string {
	if !i.expanded {
		return ""
	}
	return fmt.Sprintf("started %s · %d min · #%d", i.record.Time, i.record.Duration, i.record.Index)
}

func (i recordItem) FilterValue() string { return i.record.Date }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists history newest first. Items start collapsed; Toggle reveals
// the start time and duration of the selected one.
type Model struct {
	list list.Model
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("session", "sessions")
	return Model{list: l}
}

// SetRecords replaces the items, keeping expansion for records that survive.
func (m *Model) SetRecords(records []sessiondto.RecordOutput) tea.Cmd {
	expanded := map[sessiondto.RecordOutput]bool{}
	for _, it := range m.list.Items() {
		if ri, ok := it.(recordItem); ok && ri.expanded {
			expanded[ri.record] = true
		}
	}
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = recordItem{record: r, expanded: expanded[r]}
	}
	return m.list.SetItems(items)
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Toggle expands or collapses the selected record.
func (m *Model) Toggle() {
	idx := m.list.Index()
	item, ok := m.list.SelectedItem().(recordItem)
	if !ok {
		return
	}
	item.expanded = !item.expanded
	m.list.SetItem(idx, item)
}

// Selected returns the selected record; its Index is the position in the
// stored history, not in the list.
func (m Model) Selected() (sessiondto.RecordOutput, bool) {
	item, ok := m.list.SelectedItem().(recordItem)
	if !ok {
		return sessiondto.RecordOutput{}, false
	}
	return item.record, true
}

func (m Model) Expanded() bool {
	item, ok := m.list.SelectedItem().(recordItem)
	return ok && item.expanded
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
