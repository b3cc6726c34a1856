// Package home is the start screen: a dashboard of the learner's totals and
// the menu that starts sessions.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/progress"
	"github.com/abhisek/hanziquiz/internal/quiz"
	"github.com/abhisek/hanziquiz/internal/router"
	"github.com/abhisek/hanziquiz/internal/screen"
	"github.com/abhisek/hanziquiz/internal/screens/play"
	"github.com/abhisek/hanziquiz/internal/session"
	"github.com/abhisek/hanziquiz/internal/ui/components"
	"github.com/abhisek/hanziquiz/internal/wrongwords"
)

// statsMsg carries freshly loaded dashboard numbers.
type statsMsg struct {
	Progress progress.UserProgress
	Wrong    wrongwords.Statistics
	Err      error
}

// Screen is the home screen.
type Screen struct {
	deps  play.Deps
	menu  components.Menu
	stats *statsMsg
}

var _ screen.Screen = (*Screen)(nil)
var _ router.Refresher = (*Screen)(nil)

// New creates the home screen.
func New(deps play.Deps) *Screen {
	h := &Screen{deps: deps}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *Screen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, 6)
	for _, d := range corpus.AllDifficulties() {
		opts := h.deps.Defaults
		opts.Difficulty = d
		opts.Mode = session.ModeAll
		opts.Source = ""
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s · %d 题", difficultyLabel(d), quiz.QuestionCount(d)),
			Action: h.start(opts),
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "按单元练习",
			Disabled: len(h.deps.Sources) == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: NewUnitPicker(h.deps)} }
			},
		},
		components.MenuItem{
			Label:  "错题复习",
			Action: h.start(session.Options{Difficulty: h.deps.Defaults.Difficulty, Mode: session.ModeWrong, QuestionType: h.deps.Defaults.QuestionType}),
		},
		components.MenuItem{
			Label:  "退出",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}

func (h *Screen) start(opts session.Options) func() tea.Cmd {
	deps := h.deps
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: play.New(deps, opts)} }
	}
}

func (h *Screen) Init() tea.Cmd {
	return h.Refresh()
}

// Refresh reloads the dashboard numbers, e.g. after a session finished.
func (h *Screen) Refresh() tea.Cmd {
	repo, engine := h.deps.Repo, h.deps.Engine
	return func() tea.Msg {
		msg := statsMsg{}
		if engine != nil {
			msg.Wrong = engine.Tracker().Statistics()
		}
		if repo != nil {
			msg.Progress, msg.Err = repo.InitUserProgress(context.Background())
		}
		return msg
	}
}

func (h *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsMsg); ok {
		if m.Err != nil {
			h.deps.Logger().WithError(m.Err).Warn("could not load progress for home screen")
		}
		h.stats = &m
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sections := []string{
		renderTitle(cw),
		renderStats(h.stats, cw),
		h.menu.View(buttonWidth),
	}
	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *Screen) Title() string {
	return "首页"
}
