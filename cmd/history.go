package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/hanziquiz/internal/progress"
)

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, v, false)
			if err != nil {
				return err
			}
			defer e.Close()

			h, err := e.repo.InitGameHistory(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			games := h.Recent(limit)
			if len(games) == 0 {
				fmt.Fprintln(out, "No sessions yet.")
				return nil
			}
			t := newTable("时间", "难度", "模式", "答对", "正确率", "连击", "用时", "得分", "星级")
			for _, g := range games {
				t.add(
					g.FinishedAt.Local().Format("2006-01-02 15:04"),
					g.Difficulty.DisplayName(),
					g.Mode,
					fmt.Sprintf("%d/%d", g.CorrectCount, g.TotalQuestions),
					percent(g.Accuracy),
					fmt.Sprintf("%d", g.MaxCombo),
					fmt.Sprintf("%ds", g.DurationSecs),
					fmt.Sprintf("%d", g.Score),
					fmt.Sprintf("%d", g.Stars),
				)
			}
			t.write(out)
			fmt.Fprintf(out, "%d of %d kept sessions, total score %d, average accuracy %s\n",
				len(games), len(h.History), h.Statistics.TotalScore, percent(h.Statistics.AverageAccuracy))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", progress.RecentGames, "Number of sessions to show (0 for all)")
	return cmd
}
