package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	sessiondto "studyclock/internal/modules/session/dto"
	"studyclock/internal/ui/theme"
)

const (
	// MinScale keeps short days from filling the whole chart.
	MinScale    = 30
	NoDataLabel = "No Data"
)

type Bar struct {
	Label string
	Value int
}

// Bars turns the by-date series into one bar per date. An empty series
// yields a single zero "No Data" bar.
func Bars(series []sessiondto.DateTotalOutput) []Bar {
	if len(series) == 0 {
		return []Bar{{Label: NoDataLabel, Value: 0}}
	}
	out := make([]Bar, 0, len(series))
	for _, point := range series {
		out = append(out, Bar{Label: point.Date, Value: point.Minutes})
	}
	return out
}

// SuggestedMax is max(values..., MinScale).
func SuggestedMax(bars []Bar) int {
	top := MinScale
	for _, b := range bars {
		if b.Value > top {
			top = b.Value
		}
	}
	return top
}

type Model struct {
	bars   []Bar
	width  int
	height int
}

func New() Model {
	return Model{bars: Bars(nil)}
}

func (m *Model) SetSeries(series []sessiondto.DateTotalOutput) {
	m.bars = Bars(series)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders horizontal bars scaled to SuggestedMax. When there are more
// dates than rows, the most recent ones are shown.
func (m Model) View() string {
	bars := m.bars
	if m.height > 1 && len(bars) > m.height-1 {
		bars = bars[len(bars)-(m.height-1):]
	}
	top := SuggestedMax(bars)

	labelW := 0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
	}
	valueW := len(fmt.Sprint(top))
	barW := m.width - labelW - valueW - 4
	if barW < 10 {
		barW = 10
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Minutes per day (scale %d)", top)) + "\n")
	for _, b := range bars {
		filled := b.Value * barW / top
		label := fmt.Sprintf("%-*s", labelW, b.Label)
		sb.WriteString(theme.Muted.Render(label) + " ")
		sb.WriteString(theme.Bar.Render(strings.Repeat("█", filled)))
		sb.WriteString(strings.Repeat(" ", barW-filled))
		sb.WriteString(fmt.Sprintf(" %*d\n", valueW, b.Value))
	}
	return strings.TrimRight(sb.String(), "\n")
}
