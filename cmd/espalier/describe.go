package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/presentation/report"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <machine>",
	Short: "Print a human readable summary of a machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := app.Export(cmd.Context(), args[0], formatFlag(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		styled := false
		if f, ok := out.(*os.File); ok {
			styled = tui.IsTerminal(f)
		}
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			styled = false
		}

		rendered, err := tui.NewRenderer(styled)(report.Markdown(res))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

func init() {
	addFormatFlag(describeCmd)
	describeCmd.Flags().Bool("plain", false, "Print raw Markdown even on a terminal")
	rootCmd.AddCommand(describeCmd)
}
