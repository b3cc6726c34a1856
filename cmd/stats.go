package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/progress"
	"github.com/abhisek/hanziquiz/internal/wrongwords"
)

// statsReport is the --json form of the stats command.
type statsReport struct {
	Progress      progress.UserProgress      `json:"userProgress"`
	MasteredWords int                        `json:"masteredWordsCount"`
	RecentGames   []progress.SessionResult   `json:"recentGames"`
	History       progress.HistoryStatistics `json:"historyStatistics"`
	WrongWords    wrongwords.Statistics      `json:"wrongWordStatistics"`
}

func newStatsCmd(v *viper.Viper) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, v, false)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := e.repo.InitUserProgress(ctx)
			if err != nil {
				return err
			}
			h, err := e.repo.InitGameHistory(ctx)
			if err != nil {
				return err
			}
			book, err := e.repo.InitWrongWords(ctx)
			if err != nil {
				return err
			}

			report := statsReport{
				Progress:      p,
				MasteredWords: p.MasteredWordsCount(),
				RecentGames:   h.Recent(progress.RecentGames),
				History:       h.Statistics,
				WrongWords:    wrongwords.ComputeStatistics(book.Words),
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printStats(out, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the statistics as JSON")
	return cmd
}

func printStats(w io.Writer, r statsReport) {
	p := r.Progress
	heading(w, "学习概况")
	overview := newTable("项目", "数值")
	overview.add("学习者", p.UserName)
	overview.add("等级", fmt.Sprintf("Lv.%d", p.Level))
	overview.add("总分", fmt.Sprintf("%d", p.TotalScore))
	overview.add("答题数", fmt.Sprintf("%d", p.TotalQuestions))
	overview.add("正确率", percent(p.Accuracy))
	overview.add("学会的字", fmt.Sprintf("%d", r.MasteredWords))
	overview.add("学习时长", (time.Duration(p.TotalStudyTime) * time.Second).String())
	if p.LastPlayTime != nil {
		overview.add("上次练习", p.LastPlayTime.Local().Format("2006-01-02 15:04"))
	}
	overview.write(w)

	fmt.Fprintln(w)
	heading(w, "分难度")
	tiers := newTable("难度", "题数", "答对", "正确率")
	for _, d := range corpus.AllDifficulties() {
		s := p.DifficultyStats[d]
		tiers.add(d.DisplayName(), fmt.Sprintf("%d", s.TotalQuestions), fmt.Sprintf("%d", s.CorrectCount), percent(s.Accuracy))
	}
	tiers.write(w)

	fmt.Fprintln(w)
	heading(w, fmt.Sprintf("最近 %d 局", progress.RecentGames))
	if len(r.RecentGames) == 0 {
		fmt.Fprintln(w, "还没有完成的练习")
	} else {
		games := newTable("时间", "难度", "得分", "正确率", "星级")
		for _, g := range r.RecentGames {
			games.add(g.FinishedAt.Local().Format("01-02 15:04"), g.Difficulty.DisplayName(),
				fmt.Sprintf("%d", g.Score), percent(g.Accuracy), fmt.Sprintf("%d", g.Stars))
		}
		games.write(w)
	}
	fmt.Fprintf(w, "共 %d 局，总分 %d，平均正确率 %s\n",
		r.History.TotalGames, r.History.TotalScore, percent(r.History.AverageAccuracy))

	fmt.Fprintln(w)
	heading(w, "错题本")
	fmt.Fprintf(w, "共 %d 个，待复习 %d 个，已掌握 %d 个\n",
		r.WrongWords.TotalWrongWords, r.WrongWords.UnmasteredCount, r.WrongWords.MasteredCount)
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
