// Package play is the play screen: one session from the first question to
// the summary.
package play

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanziquiz/internal/quiz"
	"github.com/abhisek/hanziquiz/internal/router"
	"github.com/abhisek/hanziquiz/internal/screen"
	"github.com/abhisek/hanziquiz/internal/screens/summary"
	"github.com/abhisek/hanziquiz/internal/session"
	"github.com/abhisek/hanziquiz/internal/ui/components"
	"github.com/abhisek/hanziquiz/internal/ui/layout"
)

// Screen runs a single session.
type Screen struct {
	deps    Deps
	opts    session.Options
	state   *session.State
	choice  components.MultiChoice
	outcome *session.Outcome
	// warning is shown under the feedback when a save failed.
	warning     string
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)
var _ screen.EscapeHandler = (*Screen)(nil)

// New creates a play screen that starts a session with opts.
func New(deps Deps, opts session.Options) *Screen {
	return &Screen{deps: deps, opts: opts}
}

func (s *Screen) Init() tea.Cmd {
	engine, opts := s.deps.Engine, s.opts
	return func() tea.Msg {
		st, err := engine.Start(context.Background(), opts)
		return startedMsg{State: st, Err: err}
	}
}

func (s *Screen) Title() string {
	if s.state == nil {
		return "准备中"
	}
	if s.state.Review {
		return "错题复习 · " + s.state.Difficulty.DisplayName()
	}
	return "答题 · " + s.state.Difficulty.DisplayName()
}

// Status shows the live tally in the header.
func (s *Screen) Status() string {
	if s.state == nil {
		return ""
	}
	return fmt.Sprintf("✓ %d  ✗ %d  连击 %d", s.state.CorrectCount, s.state.WrongCount, s.state.CurrentCombo)
}

func (s *Screen) HandlesEscape() bool { return true }

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "返回"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "结算本局"},
			{Key: "X", Description: "放弃本局"},
			{Key: "N", Description: "继续答题"},
		}
	case s.outcome != nil:
		return []layout.KeyHint{{Key: "any key", Description: "下一题"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择"},
		{Key: "1-4", Description: "直接作答"},
		{Key: "Enter", Description: "确定"},
		{Key: "Esc", Description: "退出"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)
	case feedbackDoneMsg:
		if s.state != nil && s.outcome != nil && msg.index == s.state.CurrentIndex {
			return s.advance()
		}
		return s, nil
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.deps.Logger().WithError(msg.Err).Error("could not start session")
		s.errMsg = msg.Err.Error()
		if errors.Is(msg.Err, session.ErrNoCorpus) {
			s.errMsg = "没有可用的词库"
		}
		return s, nil
	}
	s.state = msg.State
	s.resetChoice()
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil {
		return s, nil
	}

	k := msg.String()
	if s.confirmQuit {
		switch k {
		case "y", "Y":
			s.confirmQuit = false
			return s.finish()
		case "x", "X":
			s.deps.Engine.Abandon(s.state)
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if k == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.outcome != nil {
		return s.advance()
	}

	var chosen bool
	s.choice, chosen = s.choice.Update(msg)
	if !chosen {
		return s, nil
	}
	return s.submit(s.choice.ChosenIndex)
}

// submit hands the chosen option to the engine and shows feedback.
func (s *Screen) submit(index int) (screen.Screen, tea.Cmd) {
	q := s.state.Current()
	if q == nil || index < 0 || index >= len(q.Options) {
		return s, nil
	}

	out, err := s.deps.Engine.Submit(context.Background(), s.state, q.Options[index])
	if err != nil {
		s.deps.Logger().WithError(err).Warn("answer recorded in memory only")
		if !errors.Is(err, session.ErrPersist) {
			s.errMsg = err.Error()
			return s, nil
		}
		s.warning = "错题本保存失败，本局结束后请检查存储"
	}
	if !out.Accepted {
		return s, nil
	}
	s.outcome = &out

	if s.deps.Settings.Game.AutoNextQuestion {
		idx := s.state.CurrentIndex
		return s, tea.Tick(FeedbackDelay, func(_ time.Time) tea.Msg {
			return feedbackDoneMsg{index: idx}
		})
	}
	return s, nil
}

// advance moves past feedback to the next question or the summary.
func (s *Screen) advance() (screen.Screen, tea.Cmd) {
	s.outcome = nil
	s.warning = ""
	if s.deps.Engine.Next(s.state) {
		s.resetChoice()
		return s, nil
	}
	return s.finish()
}

func (s *Screen) finish() (screen.Screen, tea.Cmd) {
	_, err := s.deps.Engine.Finish(context.Background(), s.state)
	if err != nil && !errors.Is(err, session.ErrPersist) {
		s.errMsg = err.Error()
		return s, nil
	}
	if err != nil {
		s.deps.Logger().WithError(err).Error("session result not saved")
	}

	sum := session.BuildSummary(s.state)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func (s *Screen) resetChoice() {
	q := s.state.Current()
	if q == nil {
		return
	}
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label(q.DisplayMode)
	}
	s.choice = components.NewMultiChoice(labels, q.CorrectIndex())
}

// prompt is the text the current question asks about.
func prompt(q *quiz.Question) string {
	if q == nil {
		return ""
	}
	return q.Prompt()
}
