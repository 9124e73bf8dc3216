package timer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	timerdto "studyclock/internal/modules/timer/dto"
	"studyclock/internal/ui/theme"
)

// Model renders the countdown panel. It holds no timer logic; the app model
// feeds it every state the timer emits.
type Model struct {
	state    timerdto.StateOutput
	bar      progress.Model
	todayMin int
	width    int
}

func New(initial timerdto.StateOutput) Model {
	bar := progress.New(progress.WithSolidFill(string(theme.Lavender)), progress.WithoutPercentage())
	return Model{state: initial, bar: bar}
}

func (m *Model) SetState(s timerdto.StateOutput) {
	m.state = s
}

func (m Model) State() timerdto.StateOutput {
	return m.state
}

func (m *Model) SetTodayTotal(minutes int) {
	m.todayMin = minutes
}

func (m *Model) SetWidth(w int) {
	m.width = w
	m.bar.Width = max(w-4, 10)
}

// Elapsed is the finished fraction of the current phase.
func (m Model) Elapsed() float64 {
	if m.state.Total <= 0 {
		return 0
	}
	done := float64(m.state.Total-m.state.Remaining) / float64(m.state.Total)
	return min(max(done, 0), 1)
}

func (m Model) View() string {
	phase := theme.PhaseStyle(m.state.Phase)
	var sb strings.Builder
	sb.WriteString(phase.Render(strings.ToUpper(m.state.Phase)) + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(m.state.Clock) + "\n\n")
	sb.WriteString(m.bar.ViewAs(m.Elapsed()) + "\n\n")
	sb.WriteString(m.controls() + "\n\n")
	sb.WriteString(theme.Muted.Render("today ") + theme.Hot.Render(strconv.Itoa(m.todayMin)) + theme.Muted.Render(" min"))
	return sb.String()
}

// controls greys out the action that does not apply to the current state.
func (m Model) controls() string {
	start, pause := theme.Hot, theme.Muted
	if m.state.Running {
		start, pause = theme.Muted, theme.Hot
	}
	return start.Render("s start") + "  " + pause.Render("p pause") + "  " + theme.Hot.Render("r reset")
}
