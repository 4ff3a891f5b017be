package main

import (
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/adapters/clfsm"
	"github.com/aretw0/espalier/pkg/adapters/llfsm"
	"github.com/spf13/cobra"
)

var formatDescriptions = map[string]string{
	llfsm.Format: "LLFSM machines generated as C sources",
	clfsm.Format: "CLFSM machines generated as C++ classes",
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported output formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.FormatList(cmd.OutOrStdout(), app.Formats(), func(f string) string {
			return formatDescriptions[f]
		})
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
