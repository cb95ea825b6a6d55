package quiz

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/questioner/internal/ui/layout"
	"github.com/abhisek/questioner/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	w := layout.ContentWidth(width)
	wrap := lipgloss.NewStyle().Width(w)

	var b strings.Builder
	b.WriteString("\n")

	switch s.phase {
	case PhaseGenerating:
		b.WriteString(s.stages.View())

	case PhaseFailed:
		b.WriteString(s.stages.View())
		b.WriteString("\n")
		b.WriteString("  " + theme.Incorrect.Render(errorKind(s.err)) + "\n\n")
		b.WriteString(wrap.Render(theme.Dimmed.Render("  " + s.err.Error())))

	case PhaseRejected:
		a := s.result.Assessment
		b.WriteString("  " + theme.Warning.Render("This excerpt cannot support an exam question.") + "\n\n")
		if a.MissingInfo != "" {
			b.WriteString("  " + theme.Label.Render("Missing: "))
			b.WriteString(wrap.Render(a.MissingInfo))
			b.WriteString("\n")
		}

	case PhaseAnswering, PhaseFeedback:
		b.WriteString(s.renderQuestion(w))
	}

	return b.String()
}

func (s *QuizScreen) renderQuestion(width int) string {
	var b strings.Builder
	wrap := lipgloss.NewStyle().Width(width).PaddingLeft(2)

	if s.showScenario && s.result.CleanedContext != nil {
		b.WriteString(wrap.Render(theme.Label.Render("Scenario")) + "\n")
		b.WriteString(wrap.Render(theme.Dimmed.Render(*s.result.CleanedContext)))
		b.WriteString("\n\n")
	}

	q := s.result.Question
	b.WriteString(wrap.Render(theme.Body.Bold(true).Render(q.Stem)))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View(width))

	if s.phase == PhaseFeedback {
		b.WriteString("\n")
		if s.choice.IsCorrect() {
			b.WriteString("  " + theme.Correct.Render("Correct!"))
		} else {
			b.WriteString("  " + theme.Incorrect.Render("Not quite. The answer is "+q.Answer+"."))
		}
		b.WriteString("\n\n")
		b.WriteString(wrap.Render(theme.Label.Render("Analysis")) + "\n")
		b.WriteString(wrap.Render(theme.Body.Render(q.Analysis)))
		b.WriteString("\n")
	}
	return b.String()
}
