package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export <machine>",
	Short: "Export a machine bundle through a language binding",
	Long: `Reads the bundle <dir>/<machine>.machine (or the given bundle path) with the binding
of the selected output format and prints its states, transitions and boilerplate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := app.Export(cmd.Context(), args[0], formatFlag(cmd))
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		return writeDocument(cmd.OutOrStdout(), res.Document(), output)
	},
}

func init() {
	addFormatFlag(exportCmd)
	exportCmd.Flags().StringP("output", "o", "json", "Output encoding (json, yaml)")
	rootCmd.AddCommand(exportCmd)
}

// writeDocument encodes v as JSON or YAML.
func writeDocument(w io.Writer, v any, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output encoding %q (want json or yaml)", output)
	}
}
