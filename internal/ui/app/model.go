package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "studyclock/internal/modules/session/dto"
	timerdto "studyclock/internal/modules/timer/dto"
	"studyclock/internal/ui/components"
	"studyclock/internal/ui/theme"
	chartview "studyclock/internal/ui/views/chart"
	historyview "studyclock/internal/ui/views/history"
	timerview "studyclock/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type timerPort interface {
	Start() timerdto.StateOutput
	Pause() timerdto.StateOutput
	Reset() timerdto.StateOutput
	State() timerdto.StateOutput
	Subscribe(fn func(timerdto.StateOutput)) func()
}

type sessionPort interface {
	History(ctx context.Context) ([]sessiondto.RecordOutput, error)
	Delete(ctx context.Context, index int) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context, date string) (sessiondto.SummaryOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type stateMsg struct{ state timerdto.StateOutput }

type historyLoadedMsg struct {
	records []sessiondto.RecordOutput
	summary sessiondto.SummaryOutput
	err     error
}

type deletedMsg struct {
	what string
	err  error
}

// ─── confirm actions ─────────────────────────────────────────────────────────

type deleteOne struct {
	record sessiondto.RecordOutput
}

type deleteAll struct{}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Start     key.Binding
	Pause     key.Binding
	Reset     key.Binding
	Expand    key.Binding
	Delete    key.Binding
	DeleteAll key.Binding
	Up        key.Binding
	Down      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Pause:     key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Expand:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Delete:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete session")),
		DeleteAll: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete all")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Reset},
		{k.Up, k.Down, k.Expand},
		{k.Delete, k.DeleteAll},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Timer state arrives through a
// subscription channel; history and totals are reloaded whenever the phase
// changes or a record is deleted.
type Model struct {
	timer   timerPort
	session sessionPort
	updates chan timerdto.StateOutput
	unsub   func()

	timerView   timerview.Model
	historyView historyview.Model
	chartView   chartview.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	confirm  components.Confirm
	today    int
	status   string
	width    int
	height   int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(timer timerPort, session sessionPort) Model {
	updates := make(chan timerdto.StateOutput, 64)
	unsub := timer.Subscribe(func(s timerdto.StateOutput) {
		// Never block the timer; a dropped frame is superseded by the next tick.
		select {
		case updates <- s:
		default:
		}
	})
	return Model{
		timer:       timer,
		session:     session,
		updates:     updates,
		unsub:       unsub,
		timerView:   timerview.New(timer.State()),
		historyView: historyview.New(),
		chartView:   chartview.New(),
		keys:        defaultKeys(),
		help:        help.New(),
		confirm:     components.NewConfirm(),
		status:      "ready",
	}
}

// Close detaches the model from the timer.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForState(), m.loadHistoryCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The confirmation overlay intercepts all input while open.
	if m.confirm.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.confirm.SetWidth(min(m.width-4, 60))
		m.resize()

	case stateMsg:
		prev := m.timerView.State()
		m.timerView.SetState(msg.state)
		cmds = append(cmds, m.waitForState())
		if prev.Phase != msg.state.Phase {
			m.status = msg.state.Phase + " phase"
			cmds = append(cmds, m.loadHistoryCmd())
		}
		return m, tea.Batch(cmds...)

	case historyLoadedMsg:
		if msg.err != nil {
			m.status = "history: " + msg.err.Error()
			return m, nil
		}
		m.today = msg.summary.Total
		m.timerView.SetTodayTotal(msg.summary.Total)
		m.chartView.SetSeries(msg.summary.ByDate)
		return m, m.historyView.SetRecords(msg.records)

	case deletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.what
		return m, m.loadHistoryCmd()

	case components.ConfirmAcceptMsg:
		switch action := msg.Action.(type) {
		case deleteOne:
			return m, m.deleteCmd(action.record)
		case deleteAll:
			return m, m.clearCmd()
		}
		return m, nil

	case components.ConfirmCancelMsg:
		m.status = "cancelled"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Start):
			m.timerView.SetState(m.timer.Start())
			return m, nil
		case key.Matches(msg, m.keys.Pause):
			m.timerView.SetState(m.timer.Pause())
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.timerView.SetState(m.timer.Reset())
			m.status = "reset"
			return m, nil
		case key.Matches(msg, m.keys.Expand):
			m.historyView.Toggle()
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if record, ok := m.historyView.Selected(); ok {
				m.confirm.Open(fmt.Sprintf("Delete the %d min session from %s %s?", record.Duration, record.Date, record.Time), deleteOne{record: record})
			}
			return m, nil
		case key.Matches(msg, m.keys.DeleteAll):
			if m.historyView.Len() > 0 {
				m.confirm.Open("Delete all study history?", deleteAll{})
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.historyView, cmd = m.historyView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.confirm.View())
	default:
		timerW, _, chartH := m.layout()
		top := lipgloss.JoinHorizontal(lipgloss.Top,
			theme.PaneActive.Width(timerW-2).Render(m.timerView.View()),
			m.historyView.View(),
		)
		chart := theme.Pane.Width(m.width - 2).Height(chartH).Render(m.chartView.View())
		content = lipgloss.JoinVertical(lipgloss.Left, top, chart)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	s := m.timerView.State()
	phase := theme.PhaseStyle(s.Phase).Render(" " + s.Phase + " ")
	bar := "studyclock  " + phase + theme.Muted.Render(" │ ") + s.Clock
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Hot.Render(fmt.Sprintf("today %d min", m.today)) + "  " + m.status
	right := theme.Muted.Render("?:help  s/p/r:timer  d/D:delete  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// layout splits the screen into the timer column, the history column and the
// chart row below both.
func (m Model) layout() (timerW, historyW, chartH int) {
	timerW = max(min(m.width/3, 44), 28)
	historyW = max(m.width-timerW, 20)
	chartH = max(m.height/3, 5)
	return timerW, historyW, chartH
}

func (m *Model) resize() {
	timerW, historyW, chartH := m.layout()
	topH := max(m.height-chartH-6, 6)
	m.timerView.SetWidth(timerW - 4)
	m.historyView.SetSize(historyW, topH)
	m.chartView.SetSize(m.width-6, chartH)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		return stateMsg{state: <-m.updates}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		records, err := m.session.History(ctx)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		summary, err := m.session.Stats(ctx, "")
		return historyLoadedMsg{records: records, summary: summary, err: err}
	}
}

func (m Model) deleteCmd(record sessiondto.RecordOutput) tea.Cmd {
	return func() tea.Msg {
		err := m.session.Delete(context.Background(), record.Index)
		return deletedMsg{what: fmt.Sprintf("deleted session %s %s", record.Date, record.Time), err: err}
	}
}

func (m Model) clearCmd() tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{what: "history cleared", err: m.session.Clear(context.Background())}
	}
}
