package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/hanziquiz/internal/corpus"
)

func newCorpusCmd(v *viper.Viper) *cobra.Command {
	var showUnits bool
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Summarize the loaded corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), v, false)
			if err != nil {
				return err
			}
			defer e.Close()

			pool, err := e.loadPool()
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}

			out := cmd.OutOrStdout()
			src := e.cfg.Corpus.Path
			if src == "" {
				src = "built-in sample"
			}
			heading(out, "Corpus: "+src)
			t := newTable("分类", "数量")
			t.add("单字", fmt.Sprintf("%d", len(pool.Characters)))
			t.add("短词", fmt.Sprintf("%d", len(pool.ShortPhrases)))
			t.add("长词", fmt.Sprintf("%d", len(pool.LongPhrases)))
			t.add("合计", fmt.Sprintf("%d", pool.Total()))
			t.write(out)

			fmt.Fprintln(out)
			d := newTable("难度", "可出题")
			for _, diff := range corpus.AllDifficulties() {
				d.add(diff.DisplayName(), fmt.Sprintf("%d", len(corpus.FilterByDifficulty(pool, diff))))
			}
			d.write(out)

			if showUnits {
				fmt.Fprintln(out)
				heading(out, "Units")
				for _, s := range corpus.Sources(corpus.FilterByDifficulty(pool, corpus.DifficultyHard)) {
					fmt.Fprintln(out, "  "+s)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showUnits, "units", false, "Also list the unit sources")
	return cmd
}
