package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ccmbio/wes-report/internal/output"
	"github.com/ccmbio/wes-report/internal/report"
	"github.com/ccmbio/wes-report/internal/variants"
)

func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [flags] <report>",
		Short: "Add a pathogenicity summary column to a report",
		Long: `Add a Summary column describing the pathogenicity predictions and gnomAD
frequency of each variant. The report is written back as Latin-1 CSV, by
default to <report>_with_summaries.csv; use "-o -" for stdout.`,
		Example: `  wes-report summarize 1234.wes.csv
  wes-report summarize -o - 1234.wes.csv | less`,
		Args: usageArgs(cobra.ExactArgs(1)),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{keyOutput: "output"})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(cmd, args[0])
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output CSV (default <report>_with_summaries.csv)")
	return cmd
}

func runSummarize(cmd *cobra.Command, input string) error {
	path := viper.GetString(keyOutput)
	if path == "" {
		if input == "-" {
			return usageErrorf("--output is required when reading from stdin")
		}
		path = outputBase(input) + "_with_summaries.csv"
	}

	t, err := loadReport(input)
	if err != nil {
		return err
	}
	t, err = report.AddSummary(t, variants.LegacySummary)
	if err != nil {
		return err
	}

	if path == "-" {
		return output.WriteCSV(cmd.OutOrStdout(), t)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := output.WriteCSV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("write summaries: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d summaries to %s\n", t.Len(), path)
	return nil
}
