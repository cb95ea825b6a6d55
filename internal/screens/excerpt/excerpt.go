// Package excerpt is the screen where the user pastes the text to turn
// into a question.
package excerpt

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questioner/internal/router"
	"github.com/abhisek/questioner/internal/screen"
	"github.com/abhisek/questioner/internal/screens/quiz"
	"github.com/abhisek/questioner/internal/ui/components"
	"github.com/abhisek/questioner/internal/ui/layout"
	"github.com/abhisek/questioner/internal/ui/theme"
)

const inputHeight = 10

// ExcerptScreen collects an excerpt and starts a quiz run on it.
type ExcerptScreen struct {
	input  components.ExcerptInput
	run    quiz.RunFunc
	notice string
}

var _ screen.Screen = (*ExcerptScreen)(nil)
var _ screen.KeyHintProvider = (*ExcerptScreen)(nil)

// New creates an ExcerptScreen whose quiz runs use run.
func New(run quiz.RunFunc) *ExcerptScreen {
	return &ExcerptScreen{
		input: components.NewExcerptInput(layout.MinWidth-4, inputHeight),
		run:   run,
	}
}

func (s *ExcerptScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ExcerptScreen) Title() string {
	return "New Excerpt"
}

func (s *ExcerptScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Generate"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *ExcerptScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.input.Resize(layout.ContentWidth(msg.Width), inputHeight)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+s":
			text := s.input.Value()
			if text == "" {
				s.notice = "Paste an excerpt first."
				return s, nil
			}
			s.notice = ""
			next := quiz.New(text, s.run)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ExcerptScreen) View(width, height int) string {
	intro := lipgloss.NewStyle().
		Width(layout.ContentWidth(width)).
		PaddingLeft(2).
		Render(theme.Subtitle.Render(
			"Paste a paragraph describing a study: its data, sample sizes and groups. " +
				"Method names are removed before the question is written."))

	out := "\n" + intro + "\n\n" + lipgloss.NewStyle().PaddingLeft(2).Render(s.input.View()) + "\n"
	if s.notice != "" {
		out += "\n  " + theme.Warning.Render(s.notice) + "\n"
	}
	return out
}

// Value returns the current excerpt text.
func (s *ExcerptScreen) Value() string {
	return s.input.Value()
}
