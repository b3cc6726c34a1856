package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanziquiz/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title     string
	initRan   bool
	refreshed int
	updates   int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Refresh() tea.Cmd                        { s.refreshed++; return nil }

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	quiz := &stubScreen{title: "quiz"}
	r.Push(quiz)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "quiz" {
		t.Errorf("expected active 'quiz', got %q", r.Active().Title())
	}
	if !quiz.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopRefreshesUncovered(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Push(&stubScreen{title: "quiz"})
	r.Pop()

	if r.Depth() != 1 || r.Active().Title() != "home" {
		t.Errorf("after pop: depth=%d active=%q", r.Depth(), r.Active().Title())
	}
	if home.refreshed != 1 {
		t.Errorf("home refreshed %d times, want 1", home.refreshed)
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
	if home.refreshed != 0 {
		t.Error("no-op pop should not refresh")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "quiz"})

	summary := &stubScreen{title: "summary"}
	r.Update(ReplaceScreenMsg{Screen: summary})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "summary" || !summary.initRan {
		t.Errorf("replace: active=%q init=%v", r.Active().Title(), summary.initRan)
	}
}

func TestPopToRoot(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Push(&stubScreen{title: "a"})
	r.Push(&stubScreen{title: "b"})

	r.Update(PopToRootMsg{})
	if r.Depth() != 1 || r.Active() != home {
		t.Errorf("expected only home, depth=%d", r.Depth())
	}
	if home.refreshed != 1 {
		t.Errorf("home refreshed %d times, want 1", home.refreshed)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	quiz := &stubScreen{title: "quiz"}
	r := New(home)
	r.Update(PushScreenMsg{Screen: quiz})
	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})

	if quiz.updates != 1 || home.updates != 0 {
		t.Errorf("updates: quiz=%d home=%d", quiz.updates, home.updates)
	}
	if r.View(80, 24) != "quiz" {
		t.Errorf("view = %q", r.View(80, 24))
	}
}
