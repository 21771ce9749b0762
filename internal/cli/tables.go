package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"svbase/internal/meta"
)

var tablesCmd = &cobra.Command{
	Use:   "tables [key...]",
	Short: "Print the table registry built from the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		gw, closeDB, err := openGateway(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		reg, err := loadRegistry(cmd.Context(), gw, cfg)
		if err != nil {
			return err
		}
		return printRegistry(cmd.OutOrStdout(), reg, args)
	},
}

func printRegistry(w io.Writer, reg *meta.Registry, only []string) error {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	keys := only
	if len(keys) == 0 {
		keys = reg.Keys()
	}
	if len(keys) == 0 {
		_, err := yellow.Fprintln(w, "No tables registered")
		return err
	}
	for _, key := range keys {
		t, ok := reg.Lookup(key)
		if !ok {
			if _, err := yellow.Fprintf(w, "%s: unknown table\n", key); err != nil {
				return err
			}
			continue
		}
		if _, err := green.Fprintf(w, "%s", t.Key); err != nil {
			return err
		}
		fmt.Fprintf(w, " (%s, %d fields)\n", t.RealTable, len(t.Fields))
		for _, f := range t.Fields {
			cyan.Fprintf(w, "   %-20s", f.Name)
			fmt.Fprintf(w, " %-28s %-12s %s\n", f.Column, f.Type, f.Title())
		}
	}
	return nil
}
