package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/aretw0/espalier/pkg/layout"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Manage the editor layout stored in a machine bundle",
}

var layoutInitCmd = &cobra.Command{
	Use:   "init <machine>",
	Short: "Write a grid layout for a machine that has none",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := app.Export(cmd.Context(), args[0], formatFlag(cmd))
		if err != nil {
			return err
		}
		store := layout.NewFileStore()
		force, _ := cmd.Flags().GetBool("force")
		if _, err := store.Load(res.Location); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to replace it)", layout.Path(res.Location))
		}
		if err := store.Save(res.Location, layout.Default(res.Machine)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), layout.Path(res.Location))
		return nil
	},
}

var layoutCheckCmd = &cobra.Command{
	Use:   "check <machine>",
	Short: "Verify that a machine's layout matches its states and transitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := app.Export(cmd.Context(), args[0], formatFlag(cmd))
		if err != nil {
			return err
		}
		l, err := layout.NewFileStore().Load(res.Location)
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s has no layout", res.Machine.Name)
		}
		if err != nil {
			return err
		}
		if err := l.Check(res.Machine); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: layout ok\n", res.Machine.Name)
		return nil
	},
}

func init() {
	addFormatFlag(layoutInitCmd)
	addFormatFlag(layoutCheckCmd)
	layoutInitCmd.Flags().Bool("force", false, "Replace an existing layout")
	layoutCmd.AddCommand(layoutInitCmd, layoutCheckCmd)
	rootCmd.AddCommand(layoutCmd)
}
