package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/hanziquiz/internal/wrongwords"
)

func newWordsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Inspect and manage the wrong-word book",
	}
	cmd.AddCommand(
		newWordsListCmd(v),
		newWordsTopCmd(v),
		newWordsMasterCmd(v),
		newWordsClearCmd(v),
	)
	return cmd
}

// withTracker opens the store, loads the ledger and runs fn. When fn
// reports a change the ledger is saved back.
func withTracker(cmd *cobra.Command, v *viper.Viper, fn func(t *wrongwords.Tracker) (bool, error)) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, v, false)
	if err != nil {
		return err
	}
	defer e.Close()

	t, err := e.tracker(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(t)
	if err != nil || !changed {
		return err
	}
	return saveBook(ctx, e, t)
}

func saveBook(ctx context.Context, e *env, t *wrongwords.Tracker) error {
	return e.repo.SaveWrongWords(ctx, t.Book())
}

func newWordsListCmd(v *viper.Viper) *cobra.Command {
	var filter, sort string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded words",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := wrongwords.Filter(filter)
			switch f {
			case wrongwords.FilterAll, wrongwords.FilterUnmastered, wrongwords.FilterMastered:
			default:
				return fmt.Errorf("unknown filter %q (want all, unmastered or mastered)", filter)
			}
			o := wrongwords.SortOrder(sort)
			if o != wrongwords.SortByCount && o != wrongwords.SortByTime {
				return fmt.Errorf("unknown sort %q (want count or time)", sort)
			}
			return withTracker(cmd, v, func(t *wrongwords.Tracker) (bool, error) {
				printWords(cmd.OutOrStdout(), t.List(f, o))
				s := t.Statistics()
				fmt.Fprintf(cmd.OutOrStdout(), "%d words, %d to review, %d mastered\n",
					s.TotalWrongWords, s.UnmasteredCount, s.MasteredCount)
				return false, nil
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", string(wrongwords.FilterAll), "all, unmastered or mastered")
	cmd.Flags().StringVar(&sort, "sort", string(wrongwords.SortByTime), "count or time")
	return cmd
}

func newWordsTopCmd(v *viper.Viper) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most missed words still to review",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, v, func(t *wrongwords.Tracker) (bool, error) {
				printWords(cmd.OutOrStdout(), t.Top(limit))
				return false, nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of words to show")
	return cmd
}

func newWordsMasterCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "master <id>",
		Short: "Mark a word as mastered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, v, func(t *wrongwords.Tracker) (bool, error) {
				if !t.MarkMastered(args[0]) {
					return false, fmt.Errorf("no word with id %q", args[0])
				}
				r, _ := t.Get(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s (%s) as mastered\n", r.Text, r.Pronunciation)
				return true, nil
			})
		},
	}
}

func newWordsClearCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-mastered",
		Short: "Remove mastered words from the book",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, v, func(t *wrongwords.Tracker) (bool, error) {
				n := t.ClearMastered()
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d mastered words\n", n)
				return n > 0, nil
			})
		},
	}
}

func printWords(w io.Writer, words []wrongwords.Record) {
	if len(words) == 0 {
		fmt.Fprintln(w, "No words.")
		return
	}
	t := newTable("ID", "字词", "拼音", "错次", "来源", "状态", "最近出错")
	for _, r := range words {
		state := "待复习"
		if r.IsMastered {
			state = "已掌握"
		}
		t.add(r.ID, r.Text, r.Pronunciation, fmt.Sprintf("%d", r.WrongCount), r.Source, state,
			r.LastWrongAt.Local().Format("2006-01-02 15:04"))
	}
	t.write(w)
}
