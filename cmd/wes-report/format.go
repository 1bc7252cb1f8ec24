package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccmbio/wes-report/internal/report"
)

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [flags] <report>",
		Short: "Convert a report to a highlighted workbook for review",
		Long: `Convert a report to a workbook for manual review.

Adds a blank Notes column, moves Gene to the front, tidies missing scores and
highlights score columns that cross their cutoffs. An empty HPO tab is added
for phenotype terms. Default output is <report>.xlsx.`,
		Example: `  wes-report format 1234.wes.csv`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{
				keyOutputFormat: "format",
				keyOutput:       "output",
				keyWorkers:      "workers",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args[0])
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func runFormat(cmd *cobra.Command, input string) error {
	t, err := loadReport(input)
	if err != nil {
		return err
	}

	groups, err := report.Format(t)
	if err != nil {
		return err
	}

	path, err := writeReport(groups, input, "", true)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
