package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/questioner/internal/pipeline"
	"github.com/abhisek/questioner/internal/screens/excerpt"
	"github.com/abhisek/questioner/internal/screens/quiz"
)

func noopRun(context.Context, string, pipeline.Observer) (*pipeline.Result, error) {
	return nil, nil
}

func TestNewAppModel_FirstScreen(t *testing.T) {
	m := newAppModel(Options{Run: noopRun})
	if _, ok := m.router.Active().(*excerpt.ExcerptScreen); !ok {
		t.Errorf("expected excerpt screen without text, got %T", m.router.Active())
	}

	m = newAppModel(Options{Text: "N=200 in three groups", Run: noopRun})
	if _, ok := m.router.Active().(*quiz.QuizScreen); !ok {
		t.Errorf("expected quiz screen with text, got %T", m.router.Active())
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{Run: noopRun})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_WindowSize(t *testing.T) {
	m := newAppModel(Options{Model: "qwen-plus", Run: noopRun})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	am := updated.(AppModel)
	if am.width != 100 || am.height != 30 {
		t.Errorf("unexpected size %dx%d", am.width, am.height)
	}
}
