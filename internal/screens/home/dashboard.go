package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/ui/components"
	"github.com/abhisek/hanziquiz/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

const banner = "汉 字 小 测 验"

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(banner) + "\n" + theme.Subtitle.Render("看拼音选汉字 · 看汉字选拼音"))
}

func renderStats(stats *statsMsg, cw int) string {
	if stats == nil {
		return components.Card(theme.Muted.Render("载入中..."), cw)
	}
	p := stats.Progress
	line := fmt.Sprintf("%s   %s   %s   %s",
		theme.Star.Render(fmt.Sprintf("Lv.%d", max(p.Level, 1))),
		theme.Body.Render(fmt.Sprintf("总分 %d", p.TotalScore)),
		theme.Correct.Render(fmt.Sprintf("学会 %d", p.MasteredWordsCount())),
		theme.Incorrect.Render(fmt.Sprintf("错题 %d", stats.Wrong.UnmasteredCount)),
	)
	return components.Card(line, cw)
}

func difficultyLabel(d corpus.Difficulty) string {
	switch d {
	case corpus.DifficultyMedium:
		return "中等"
	case corpus.DifficultyHard:
		return "困难"
	}
	return "简单"
}
