package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyclock/internal/ui/theme"
)

// ConfirmAcceptMsg is emitted when the user confirms. Action is whatever
// was passed to Open.
type ConfirmAcceptMsg struct{ Action any }

// ConfirmCancelMsg is emitted when the user declines.
type ConfirmCancelMsg struct{ Action any }

var confirmStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Red).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(1, 2)

var (
	acceptKeys  = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes"))
	declineKeys = key.NewBinding(key.WithKeys("n", "N", "esc", "q"), key.WithHelp("n/esc", "no"))
)

// Confirm is a yes/no overlay guarding destructive actions.
type Confirm struct {
	prompt  string
	action  any
	visible bool
	width   int
}

func NewConfirm() Confirm {
	return Confirm{}
}

func (c Confirm) Visible() bool { return c.visible }

func (c *Confirm) Open(prompt string, action any) {
	c.prompt = prompt
	c.action = action
	c.visible = true
}

func (c *Confirm) SetWidth(w int) { c.width = w }

// Update swallows every key while visible; only y and n/esc close it.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	action := c.action
	switch {
	case key.Matches(keyMsg, acceptKeys):
		c.visible = false
		c.action = nil
		return c, func() tea.Msg { return ConfirmAcceptMsg{Action: action} }
	case key.Matches(keyMsg, declineKeys):
		c.visible = false
		c.action = nil
		return c, func() tea.Msg { return ConfirmCancelMsg{Action: action} }
	}
	return c, nil
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	w := c.width
	if w < 20 {
		w = 48
	}
	body := theme.Danger.Render(c.prompt) + "\n\n" +
		theme.Muted.Render(acceptKeys.Help().Key+" "+acceptKeys.Help().Desc+"   "+declineKeys.Help().Key+" "+declineKeys.Help().Desc)
	return confirmStyle.Width(w - 2).Render(body)
}
