package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newExportCmd(v *viper.Viper) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all learner data as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, v, false)
			if err != nil {
				return err
			}
			defer e.Close()

			doc, err := e.repo.Export(ctx)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			toFile := output != "" && output != "-"
			if toFile {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			if toFile {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported learner data to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Write to this file instead of stdout")
	return cmd
}
