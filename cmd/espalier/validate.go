package main

import (
	"fmt"

	"github.com/aretw0/espalier/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine>",
	Short: "Check the machine graph for consistency",
	Long:  `Exports the machine, crawls it from its initial and suspend states, and reports dangling transitions and unreachable states.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := app.Export(cmd.Context(), args[0], formatFlag(cmd))
		if err != nil {
			return err
		}
		if err := validator.ValidateGraph(res.Machine); err != nil {
			return fmt.Errorf("%s: %w", res.Machine.Name, err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", res.Machine.Name)
		return err
	},
}

func init() {
	addFormatFlag(validateCmd)
	rootCmd.AddCommand(validateCmd)
}
