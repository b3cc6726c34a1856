// Package summary shows the result of a finished session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abhisek/hanziquiz/internal/router"
	"github.com/abhisek/hanziquiz/internal/screen"
	"github.com/abhisek/hanziquiz/internal/session"
	"github.com/abhisek/hanziquiz/internal/ui/components"
	"github.com/abhisek/hanziquiz/internal/ui/layout"
	"github.com/abhisek/hanziquiz/internal/ui/theme"
)

// maxMissedShown caps the missed-word list so the view fits small terminals.
const maxMissedShown = 6

const maxStars = 5

// Screen displays the session summary.
type Screen struct {
	summary *session.Summary
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a summary screen.
func New(summary *session.Summary) *Screen {
	return &Screen{summary: summary}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "本局成绩"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "回到首页"},
		{Key: "Esc", Description: "回到首页"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	r := sum.Result
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(layout.Center(theme.Title.Render(headline(r.Stars)), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(renderStars(r.Stars), width))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"答对", fmt.Sprintf("%d / %d", r.CorrectCount, r.TotalQuestions)},
		{"正确率", fmt.Sprintf("%.0f%%", r.Accuracy*100)},
		{"最高连击", fmt.Sprintf("%d", r.MaxCombo)},
		{"用时", formatDuration(r.DurationSecs)},
		{"基础分", fmt.Sprintf("%d × %d = %d", r.Breakdown.CorrectCount, r.Breakdown.PointsPerQuestion, r.Breakdown.BaseScore)},
		{"连击奖励", fmt.Sprintf("+%d", r.Breakdown.ComboBonus)},
		{"全对奖励", fmt.Sprintf("+%d", r.Breakdown.CompletionBonus)},
		{"总分", fmt.Sprintf("%d", r.Score)},
	}
	b.WriteString(layout.Center(components.Card(table(rows), cw), width))
	b.WriteString("\n")

	if len(sum.Missed) > 0 {
		b.WriteString("\n")
		b.WriteString(layout.Center(theme.Muted.Render("需要再练练"), width))
		b.WriteString("\n")
		for i, e := range sum.Missed {
			if i == maxMissedShown {
				b.WriteString(layout.Center(theme.Muted.Render(fmt.Sprintf("…还有 %d 个", len(sum.Missed)-i)), width))
				b.WriteString("\n")
				break
			}
			b.WriteString(layout.Center(theme.Incorrect.Render(fmt.Sprintf("%s  %s", e.Text, e.Pronunciation)), width))
			b.WriteString("\n")
		}
	}

	for _, ev := range sum.Events {
		style := theme.Star
		if ev.Kind == session.EventPersistFailed {
			style = theme.Incorrect
		}
		b.WriteString(layout.Center(style.Render(ev.Message), width))
		b.WriteString("\n")
	}
	return b.String()
}

func headline(stars int) string {
	switch {
	case stars >= 5:
		return "太棒了！"
	case stars >= 3:
		return "真不错！"
	case stars == 2:
		return "继续加油！"
	}
	return "再接再厉！"
}

func renderStars(n int) string {
	return theme.Star.Render(strings.Repeat("★", n)) + theme.Muted.Render(strings.Repeat("☆", max(maxStars-n, 0)))
}

// table aligns label/value rows. Labels are CJK, so widths are measured in
// terminal cells rather than runes.
func table(rows [][2]string) string {
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r[0]))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = theme.Muted.Render(runewidth.FillRight(r[0], labelWidth)) + "   " + theme.Body.Render(r[1])
	}
	return strings.Join(lines, "\n")
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
