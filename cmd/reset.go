package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newResetCmd(v *viper.Viper) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all learner data and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprint(out, "This deletes progress, history and the wrong-word book. Type \"yes\" to continue: ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.TrimSpace(line) != "yes" {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			ctx := cmd.Context()
			e, err := openEnv(ctx, v, false)
			if err != nil {
				return err
			}
			defer e.Close()

			if _, err := e.repo.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "All learner data has been reset.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
