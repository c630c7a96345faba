package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/erazemk/bso/internal/report"
)

func newReportCmd(a *app) *cobra.Command {
	var xlsxPath string
	cmd := &cobra.Command{
		Use:   "report <year> <month>",
		Short: "Print the monthly report as JSON or write it as a spreadsheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid month %q", args[1])
			}

			database, err := a.openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()

			rep, err := report.NewEngine(database).GetReport(cmd.Context(), year, month)
			if err != nil {
				return err
			}

			if xlsxPath == "" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}

			f, err := os.Create(xlsxPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", xlsxPath, err)
			}
			if err := report.WriteXLSX(f, fmt.Sprintf("%04d-%02d", year, month), rep); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", xlsxPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the report to this spreadsheet file instead of printing JSON")
	return cmd
}
