// Package app hosts the quiz TUI: a router of screens inside a frame with
// a header and a key-hint footer.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/questioner/internal/router"
	"github.com/abhisek/questioner/internal/screen"
	"github.com/abhisek/questioner/internal/screens/excerpt"
	"github.com/abhisek/questioner/internal/screens/quiz"
	"github.com/abhisek/questioner/internal/ui/layout"
)

// Options configure the TUI.
type Options struct {
	// Text starts a run immediately. When empty the user is asked to
	// paste an excerpt first.
	Text string

	// Model is shown in the header.
	Model string

	// Run executes the pipeline.
	Run quiz.RunFunc
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	model  string
	width  int
	height int
}

// newAppModel creates the root model with its first screen.
func newAppModel(opts Options) AppModel {
	var first screen.Screen
	if opts.Text != "" {
		first = quiz.New(opts.Text, opts.Run)
	} else {
		first = excerpt.New(opts.Run)
	}
	return AppModel{
		router: router.New(first),
		model:  opts.Model,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			if active, ok := m.router.Active().(screen.Closer); ok {
				active.Close()
			}
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.model, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hp.KeyHints(), hints...)
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
