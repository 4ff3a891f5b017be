package main

import (
	"fmt"

	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine>",
	Short: "Export the machine graph visualization",
	Long:  `Exports the machine and outputs a Mermaid diagram (graph TD) of its states and transitions.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := app.Export(cmd.Context(), args[0], formatFlag(cmd))
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		highlight, _ := cmd.Flags().GetStringSlice("highlight")
		current, _ := cmd.Flags().GetString("current")
		if len(highlight) > 0 || current != "" {
			overlay = &graph.GraphOverlay{Highlighted: highlight, Current: current}
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(res.Machine, overlay))
		return err
	},
}

func init() {
	addFormatFlag(graphCmd)
	graphCmd.Flags().StringSlice("highlight", nil, "States to highlight")
	graphCmd.Flags().String("current", "", "State to mark as current")
	rootCmd.AddCommand(graphCmd)
}
