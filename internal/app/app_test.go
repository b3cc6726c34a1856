package app

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/quiz"
	"github.com/abhisek/hanziquiz/internal/screens/play"
	"github.com/abhisek/hanziquiz/internal/session"
	"github.com/abhisek/hanziquiz/internal/store"
	"github.com/abhisek/hanziquiz/internal/userdata"
)

func testDeps(t *testing.T) play.Deps {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	pool, err := corpus.NewBuilder(log).Parse(corpus.Sample())
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	repo := userdata.NewRepo(store.NewMemory(), nil, log)
	engine := session.NewEngine(session.Config{
		Pool:      pool,
		Generator: quiz.NewGenerator(quiz.NewRand(3), log),
		Repo:      repo,
		Log:       log,
	})
	return play.Deps{
		Engine:   engine,
		Repo:     repo,
		Settings: userdata.DefaultSettings(),
		Defaults: session.Options{Difficulty: corpus.DifficultySimple, Mode: session.ModeAll, QuestionType: quiz.TypeMixed},
		Sources:  corpus.Sources(corpus.FilterByDifficulty(pool, corpus.DifficultyHard)),
		Log:      log,
	}
}

// step delivers msg and then runs the resulting commands until they stop
// producing messages. Timers such as cursor blinks are dropped.
func step(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	return settle(t, m, msg, 0)
}

func settle(t *testing.T, m tea.Model, msg tea.Msg, depth int) tea.Model {
	t.Helper()
	if depth > 20 {
		t.Fatal("command chain did not settle")
	}
	switch msg := msg.(type) {
	case nil, tea.QuitMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = settle(t, m, runCmd(c), depth+1)
		}
		return m
	}
	m, cmd := m.Update(msg)
	return settle(t, m, runCmd(cmd), depth+1)
}

func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func boot(t *testing.T, m Model) tea.Model {
	t.Helper()
	var tm tea.Model = m
	tm = step(t, tm, tea.WindowSizeMsg{Width: 90, Height: 32})
	tm = step(t, tm, runCmd(m.Init()))
	return tm
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func render(m tea.Model) string {
	return m.(Model).render()
}

func activeTitle(m tea.Model) string {
	return m.(Model).router.Active().Title()
}

func TestModel_PlaysSessionToSummary(t *testing.T) {
	deps := testDeps(t)
	start := deps.Defaults
	m := boot(t, New(deps, &start))

	if !strings.HasPrefix(activeTitle(m), "答题") {
		t.Fatalf("active screen = %q, want the play screen", activeTitle(m))
	}

	for i := 0; i < quiz.QuestionCount(corpus.DifficultySimple); i++ {
		m = step(t, m, key('1'))
		m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	}

	if activeTitle(m) != "本局成绩" {
		t.Fatalf("active screen = %q, want the summary", activeTitle(m))
	}
	if !strings.Contains(render(m), "总分") {
		t.Error("summary view should show the total score")
	}

	history, err := deps.Repo.InitGameHistory(context.Background())
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(history.History) != 1 || history.History[0].TotalQuestions != 10 {
		t.Errorf("history = %+v", history.Statistics)
	}

	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if activeTitle(m) != "首页" {
		t.Errorf("after summary: active = %q, want home", activeTitle(m))
	}
}

func TestModel_AbandonFromQuitConfirm(t *testing.T) {
	deps := testDeps(t)
	start := deps.Defaults
	m := boot(t, New(deps, &start))

	m = step(t, m, key('2'))
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if !strings.Contains(render(m), "要结束这一局吗") {
		t.Fatal("esc should ask before leaving a session")
	}

	m = step(t, m, key('x'))
	if activeTitle(m) != "首页" {
		t.Fatalf("active = %q, want home after abandon", activeTitle(m))
	}

	history, err := deps.Repo.InitGameHistory(context.Background())
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(history.History) != 0 {
		t.Error("abandoned session must not be recorded")
	}
}

func TestModel_FinishEarlyFromQuitConfirm(t *testing.T) {
	deps := testDeps(t)
	start := deps.Defaults
	m := boot(t, New(deps, &start))

	m = step(t, m, key('1'))
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	m = step(t, m, key('y'))
	if activeTitle(m) != "本局成绩" {
		t.Fatalf("active = %q, want summary", activeTitle(m))
	}

	history, _ := deps.Repo.InitGameHistory(context.Background())
	if len(history.History) != 1 {
		t.Error("finishing early should record the session")
	}
}

func TestModel_HomeMenuStartsSession(t *testing.T) {
	deps := testDeps(t)
	m := boot(t, New(deps, nil))
	if activeTitle(m) != "首页" {
		t.Fatalf("active = %q", activeTitle(m))
	}
	if !strings.Contains(render(m), "简单") {
		t.Error("home should list the difficulties")
	}

	// Esc at the bottom of the stack does nothing.
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if activeTitle(m) != "首页" {
		t.Fatal("esc should not leave home")
	}

	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if activeTitle(m) != "答题 · "+corpus.DifficultyMedium.DisplayName() {
		t.Errorf("active = %q, want a medium session", activeTitle(m))
	}
}

func TestModel_UnitPicker(t *testing.T) {
	deps := testDeps(t)
	m := boot(t, New(deps, nil))

	for i := 0; i < 3; i++ {
		m = step(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if activeTitle(m) != "按单元练习" {
		t.Fatalf("active = %q, want the unit picker", activeTitle(m))
	}

	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.HasPrefix(activeTitle(m), "答题") {
		t.Fatalf("active = %q, want the play screen", activeTitle(m))
	}
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	m = step(t, m, key('x'))
	if activeTitle(m) != "首页" {
		t.Errorf("abandon should return home, got %q", activeTitle(m))
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := New(testDeps(t), nil)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestModel_TooSmall(t *testing.T) {
	var m tea.Model = New(testDeps(t), nil)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(render(m), "窗口太小啦") {
		t.Error("small terminals should get the resize message")
	}
}
