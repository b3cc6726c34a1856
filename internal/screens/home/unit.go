package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/samber/lo"

	"github.com/abhisek/hanziquiz/internal/router"
	"github.com/abhisek/hanziquiz/internal/screen"
	"github.com/abhisek/hanziquiz/internal/screens/play"
	"github.com/abhisek/hanziquiz/internal/session"
	"github.com/abhisek/hanziquiz/internal/ui/components"
	"github.com/abhisek/hanziquiz/internal/ui/layout"
	"github.com/abhisek/hanziquiz/internal/ui/theme"
)

// maxUnitsShown caps the unit list.
const maxUnitsShown = 8

// UnitPicker lets the learner type part of a unit name and start a session
// limited to that unit.
type UnitPicker struct {
	deps     play.Deps
	input    components.TextInput
	matches  []string
	selected int
}

var _ screen.Screen = (*UnitPicker)(nil)
var _ screen.KeyHintProvider = (*UnitPicker)(nil)

// NewUnitPicker creates the picker over deps.Sources.
func NewUnitPicker(deps play.Deps) *UnitPicker {
	u := &UnitPicker{
		deps:  deps,
		input: components.NewTextInput("输入单元名，如 课文1", 20),
	}
	u.filter()
	return u
}

func (u *UnitPicker) Init() tea.Cmd {
	return u.input.Init()
}

func (u *UnitPicker) Title() string {
	return "按单元练习"
}

func (u *UnitPicker) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "选择单元"},
		{Key: "Enter", Description: "开始"},
		{Key: "Esc", Description: "返回"},
	}
}

func (u *UnitPicker) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "up":
			u.selected = max(u.selected-1, 0)
			return u, nil
		case "down":
			u.selected = min(u.selected+1, max(len(u.matches)-1, 0))
			return u, nil
		case "enter":
			if len(u.matches) == 0 {
				return u, nil
			}
			opts := u.deps.Defaults
			opts.Mode = session.ModeUnit
			opts.Source = u.matches[u.selected]
			return u, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: play.New(u.deps, opts)}
			}
		}
	}

	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	u.filter()
	return u, cmd
}

// filter keeps the units containing the typed text.
func (u *UnitPicker) filter() {
	q := u.input.Value()
	u.matches = lo.Filter(u.deps.Sources, func(s string, _ int) bool {
		return q == "" || strings.Contains(s, q)
	})
	u.selected = min(u.selected, max(len(u.matches)-1, 0))
}

func (u *UnitPicker) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Body.Render("单元：")+u.input.View(), width))
	b.WriteString("\n\n")

	if len(u.matches) == 0 {
		b.WriteString(layout.Center(theme.Muted.Render("没有找到这个单元"), width))
		return b.String()
	}
	for i, s := range u.matches {
		if i == maxUnitsShown {
			b.WriteString(layout.Center(theme.Muted.Render(fmt.Sprintf("…还有 %d 个", len(u.matches)-i)), width))
			break
		}
		line := "  " + s
		style := theme.Unselected
		if i == u.selected {
			line = "▸ " + s
			style = theme.Selected
		}
		b.WriteString(layout.Center(style.Render(line), width))
		b.WriteString("\n")
	}
	return b.String()
}
