package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// ExcerptInput wraps bubbles/textarea for pasting a research excerpt.
type ExcerptInput struct {
	Model textarea.Model
}

// NewExcerptInput creates a focused, empty input.
func NewExcerptInput(width, height int) ExcerptInput {
	ta := textarea.New()
	ta.Placeholder = "Paste a methods or results paragraph from a paper..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()
	return ExcerptInput{Model: ta}
}

// Init returns the initial command.
func (e ExcerptInput) Init() tea.Cmd {
	return e.Model.Focus()
}

// Update handles messages.
func (e ExcerptInput) Update(msg tea.Msg) (ExcerptInput, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the input.
func (e ExcerptInput) View() string {
	return e.Model.View()
}

// Value returns the trimmed text.
func (e ExcerptInput) Value() string {
	return strings.TrimSpace(e.Model.Value())
}

// Resize adapts the input to the available space.
func (e *ExcerptInput) Resize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}
