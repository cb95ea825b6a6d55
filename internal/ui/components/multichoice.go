package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questioner/internal/ui/theme"
)

// MultiChoice is a single-answer selector over keyed options. Options are
// shown in key order; pressing an option's key (case-insensitive) selects
// and submits it directly.
type MultiChoice struct {
	Keys      []string
	Options   map[string]string
	Answer    string
	Selected  int
	Submitted bool
	Chosen    string
}

// NewMultiChoice creates a new multiple-choice component. keys fixes the
// display order.
func NewMultiChoice(keys []string, options map[string]string, answer string) MultiChoice {
	return MultiChoice{
		Keys:    keys,
		Options: options,
		Answer:  answer,
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, Keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case key.Matches(kmsg, Keys.Down):
		if m.Selected < len(m.Keys)-1 {
			m.Selected++
		}
		return m, nil
	case key.Matches(kmsg, Keys.Submit):
		if len(m.Keys) > 0 {
			m.submit(m.Selected)
		}
		return m, nil
	}

	pressed := strings.ToUpper(kmsg.String())
	for i, k := range m.Keys {
		if strings.ToUpper(k) == pressed {
			m.Selected = i
			m.submit(i)
			break
		}
	}
	return m, nil
}

func (m *MultiChoice) submit(i int) {
	m.Submitted = true
	m.Chosen = m.Keys[i]
}

// View renders the options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	for i, k := range m.Keys {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := lipgloss.NewStyle().Width(width).Render(fmt.Sprintf("%s%s)  %s", prefix, k, m.Options[k]))

		switch {
		case m.Submitted && k == m.Answer:
			line = theme.Correct.Render(line)
		case m.Submitted && k == m.Chosen:
			line = theme.Incorrect.Render(line)
		case m.Submitted:
			line = theme.Dimmed.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Chosen == m.Answer
}
