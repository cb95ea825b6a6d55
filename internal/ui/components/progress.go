package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/questioner/internal/ui/theme"
)

// spinnerFrames animate the stage in flight.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StageList shows the pipeline stages as a checklist: finished stages are
// ticked, the current one spins, later ones are dimmed.
type StageList struct {
	Labels  []string
	Current int // index of the stage in flight; len(Labels) when all done
	Failed  bool
	Frame   int
}

// NewStageList creates a StageList with the first stage in flight.
func NewStageList(labels ...string) StageList {
	return StageList{Labels: labels}
}

// Tick advances the spinner by one frame.
func (s StageList) Tick() StageList {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
	return s
}

// View renders the checklist.
func (s StageList) View() string {
	var b strings.Builder
	for i, label := range s.Labels {
		var line string
		switch {
		case i < s.Current:
			line = theme.Correct.Render("✓ ") + theme.Body.Render(label)
		case i == s.Current && s.Failed:
			line = theme.Incorrect.Render("✗ ") + theme.Body.Render(label)
		case i == s.Current:
			line = lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinnerFrames[s.Frame]+" ") +
				theme.Body.Bold(true).Render(label)
		default:
			line = theme.Dimmed.Render("· " + label)
		}
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}
