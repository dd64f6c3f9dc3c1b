package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kilianp07/crashlens/app"
	"github.com/kilianp07/crashlens/core/scoring"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the active encoding tables and scoring backends",
	Args:  cobra.NoArgs,
	RunE:  printTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func printTables(cmd *cobra.Command, _ []string) error {
	return withService(func(svc *app.Service) error {
		norm := svc.Normalizer

		dirs := table.NewWriter()
		dirs.SetOutputMirror(cmd.OutOrStdout())
		dirs.SetStyle(table.StyleLight)
		// Titles wrap at the table width; the table names go in the caption.
		dirs.SetTitle("Directions")
		dirs.SetCaption("table: %s", norm.Directions.Name)
		dirs.AppendHeader(table.Row{"Direction", "Code"})
		for _, d := range norm.Directions.Directions() {
			code, _ := norm.Directions.Encode(d)
			dirs.AppendRow(table.Row{d.String(), code})
		}
		dirs.Render()

		inters := table.NewWriter()
		inters.SetOutputMirror(cmd.OutOrStdout())
		inters.SetStyle(table.StyleLight)
		inters.SetTitle("Intersections")
		inters.SetCaption("table: %s", norm.Intersections.Name)
		inters.AppendHeader(table.Row{"Category", "Code", "Kind"})
		for _, c := range norm.Intersections.Categories() {
			code, _ := norm.Intersections.Encode(c)
			inters.AppendRow(table.Row{c.String(), code, norm.Intersections.KindOfCode(code).String()})
		}
		inters.Render()

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "backend: %s (registered: %v)\n", svc.Analyzer.Backend(), scoring.Backends())
		return err
	})
}
