package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func pressCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"八", "人", "入", "大"}, 2)

	m, done := m.Update(pressCode(tea.KeyDown))
	if done || m.Selected != 1 {
		t.Fatalf("after down: selected=%d done=%v", m.Selected, done)
	}
	m, _ = m.Update(pressCode(tea.KeyUp))
	m, _ = m.Update(pressCode(tea.KeyUp))
	if m.Selected != 0 {
		t.Errorf("cursor should stop at the top, got %d", m.Selected)
	}

	m, _ = m.Update(pressCode(tea.KeyDown))
	m, _ = m.Update(pressCode(tea.KeyDown))
	m, done = m.Update(pressCode(tea.KeyEnter))
	if !done || !m.Submitted || m.ChosenIndex != 2 {
		t.Fatalf("enter: done=%v chosen=%d", done, m.ChosenIndex)
	}
	if !m.IsCorrect() {
		t.Error("index 2 is correct")
	}

	// Submitted selectors ignore further keys.
	m, done = m.Update(pressCode(tea.KeyUp))
	if done || m.Selected != 2 {
		t.Error("submitted selector should not move")
	}
}

func TestMultiChoice_PickByNumberAndLetter(t *testing.T) {
	m := NewMultiChoice([]string{"bā", "rén", "rù", "dà"}, 0)
	m, done := m.Update(press('4'))
	if !done || m.ChosenIndex != 3 || m.IsCorrect() {
		t.Errorf("pick 4: done=%v chosen=%d", done, m.ChosenIndex)
	}

	m = NewMultiChoice([]string{"bā", "rén", "rù", "dà"}, 1)
	m, done = m.Update(press('b'))
	if !done || !m.IsCorrect() {
		t.Errorf("pick b: done=%v chosen=%d", done, m.ChosenIndex)
	}
}

func TestMultiChoice_PickOutOfRange(t *testing.T) {
	m := NewMultiChoice([]string{"一", "二"}, 0)
	m, done := m.Update(press('4'))
	if done || m.Submitted {
		t.Error("picking a missing option should do nothing")
	}
}

func TestMultiChoice_ViewMarksAnswer(t *testing.T) {
	m := NewMultiChoice([]string{"八", "人", "入", "大"}, 2)
	view := m.View()
	for _, l := range OptionLabels {
		if !strings.Contains(view, l+".") {
			t.Errorf("view missing label %s", l)
		}
	}

	m, _ = m.Update(press('1'))
	view = m.View()
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Errorf("revealed view should mark correct and chosen:\n%s", view)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	ran := ""
	items := []MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { ran = "one"; return nil }},
		{Label: "off", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { ran = "two"; return nil }},
	}
	m := NewMenu(items)
	if m.Selected != 1 {
		t.Fatalf("first enabled item should be selected, got %d", m.Selected)
	}
	m, _ = m.Update(pressCode(tea.KeyDown))
	if m.Selected != 3 {
		t.Fatalf("down should skip disabled, got %d", m.Selected)
	}
	m.Update(pressCode(tea.KeyEnter))
	if ran != "two" {
		t.Errorf("ran = %q, want two", ran)
	}
	if !strings.Contains(m.View(20), "two") {
		t.Error("menu view should list labels")
	}
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar(3, 10, 30)
	if p.Fraction() != 0.3 {
		t.Errorf("fraction = %v", p.Fraction())
	}
	if !strings.Contains(p.View(), "3/10") {
		t.Error("view should show the counter")
	}
	if NewProgressBar(1, 0, 30).Fraction() != 0 {
		t.Error("empty total should be 0")
	}
	if NewProgressBar(12, 10, 30).Fraction() != 1 {
		t.Error("fraction should clamp at 1")
	}
}

func TestContentWidth(t *testing.T) {
	if ContentWidth(200) != 60 || ContentWidth(10) != 20 || ContentWidth(50) != 44 {
		t.Errorf("ContentWidth = %d %d %d", ContentWidth(200), ContentWidth(10), ContentWidth(50))
	}
}
