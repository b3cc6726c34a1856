package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanziquiz/internal/quiz"
	"github.com/abhisek/hanziquiz/internal/ui/components"
	"github.com/abhisek/hanziquiz/internal/ui/layout"
	"github.com/abhisek/hanziquiz/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.state == nil:
		return theme.Muted.Width(width).Align(lipgloss.Center).Render("\n\n正在出题...")
	case s.confirmQuit:
		return renderQuitConfirm(width, s.state.CorrectCount+s.state.WrongCount)
	}
	return s.renderQuestion(width)
}

func (s *Screen) renderQuestion(width int) string {
	q := s.state.Current()
	if q == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	bar := components.NewProgressBar(s.state.CurrentIndex+1, s.state.Total(), cw)
	b.WriteString(layout.Center(bar.View(), width))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(theme.Muted.Render(instruction(q.DisplayMode)), width))
	b.WriteString("\n")
	b.WriteString(layout.Center(theme.Prompt.Render(prompt(q)), width))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(s.choice.View(), width))

	if s.outcome != nil {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *Screen) renderFeedback(width int) string {
	var lines []string
	if s.outcome.Correct {
		msg := "答对了！"
		if s.outcome.Combo >= 2 {
			msg += theme.Combo.Render(fmt.Sprintf("  连击 ×%d", s.outcome.Combo))
		}
		lines = append(lines, theme.Correct.Render(msg))
	} else {
		lines = append(lines, theme.Incorrect.Render("再想想哦"))
		answer := s.outcome.Answer.Text
		if s.deps.Settings.Game.ShowPinyinHint {
			answer = fmt.Sprintf("%s（%s）", s.outcome.Answer.Text, s.outcome.Answer.Pronunciation)
		}
		lines = append(lines, theme.Body.Render("正确答案："+answer))
	}
	for _, ev := range s.outcome.Events {
		lines = append(lines, theme.Star.Render("★ "+ev.Message))
	}
	if s.warning != "" {
		lines = append(lines, theme.Incorrect.Render(s.warning))
	}
	if !s.deps.Settings.Game.AutoNextQuestion {
		hint := "按任意键继续"
		if s.state.IsLast() {
			hint = "按任意键查看成绩"
		}
		lines = append(lines, theme.Hint.Render(hint))
	}
	return layout.Center(strings.Join(lines, "\n"), width)
}

func instruction(mode quiz.DisplayMode) string {
	if mode == quiz.ModeShowCharacter {
		return "看汉字，选拼音"
	}
	return "看拼音，选汉字"
}

func renderQuitConfirm(width, answered int) string {
	lines := []string{
		theme.Title.Render("要结束这一局吗？"),
		"",
		theme.Body.Render(fmt.Sprintf("已答 %d 题", answered)),
		"",
		theme.Muted.Render("Y 结算已答的题目   X 放弃不计分   N 继续"),
	}
	return layout.Center("\n\n"+strings.Join(lines, "\n"), width)
}

func renderError(width int, msg string) string {
	return layout.Center("\n\n"+theme.Incorrect.Render("出错了")+"\n\n"+theme.Body.Render(msg)+"\n\n"+theme.Hint.Render("按任意键返回"), width)
}
