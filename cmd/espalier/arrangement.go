package main

import (
	"fmt"

	"github.com/aretw0/espalier/internal/dto"
	"github.com/aretw0/espalier/pkg/export"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/spf13/cobra"
)

var arrangementCmd = &cobra.Command{
	Use:     "arrangement",
	Aliases: []string{"arr"},
	Short:   "Manage arrangements of cooperating machines",
}

var arrangementShowCmd = &cobra.Command{
	Use:   "show <arrangement>",
	Short: "Print the machines of an arrangement, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := app.Store().Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var arrangementSaveCmd = &cobra.Command{
	Use:   "save <arrangement> [machine...]",
	Short: "Write the machine list of an arrangement, replacing any previous one",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Store().Save(cmd.Context(), args[0], args[1:]); err != nil {
			return err
		}
		logger.Info("arrangement saved", "arrangement", args[0], "machines", len(args)-1)
		return nil
	},
}

var arrangementDiscoverCmd = &cobra.Command{
	Use:   "discover <arrangement>",
	Short: "Save every machine bundle found in --dir as an arrangement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := app.Discover()
		if err != nil {
			return err
		}
		if err := app.Store().Save(cmd.Context(), args[0], names); err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var arrangementListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored arrangements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lister, ok := app.Store().(ports.ArrangementLister)
		if !ok {
			return ports.ErrListUnsupported
		}
		names, err := lister.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var arrangementDeleteCmd = &cobra.Command{
	Use:   "delete <arrangement>",
	Short: "Remove an arrangement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Store().Delete(cmd.Context(), args[0])
	},
}

var arrangementExportCmd = &cobra.Command{
	Use:   "export <arrangement>",
	Short: "Export every machine of an arrangement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := app.ExportArrangement(cmd.Context(), args[0], formatFlag(cmd))
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		return writeDocument(cmd.OutOrStdout(), documents(results), output)
	},
}

func documents(results []*export.Result) []dto.MachineDocument {
	docs := make([]dto.MachineDocument, len(results))
	for i, r := range results {
		docs[i] = r.Document()
	}
	return docs
}

func init() {
	addFormatFlag(arrangementExportCmd)
	arrangementExportCmd.Flags().StringP("output", "o", "json", "Output encoding (json, yaml)")

	arrangementCmd.AddCommand(
		arrangementShowCmd,
		arrangementSaveCmd,
		arrangementDiscoverCmd,
		arrangementListCmd,
		arrangementDeleteCmd,
		arrangementExportCmd,
	)
	rootCmd.AddCommand(arrangementCmd)
}
