package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ccmbio/wes-report/internal/report"
)

func newRoundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rounds [flags] <report>",
		Short: "Filter a report for genome rounds review",
		Long: `Filter a report for genome rounds review.

Writes three groups: all variants, the rare high-quality variants, and the
rare high-quality variants in OMIM genes followed by common variants that may
be ClinVar-relevant. Default output is <report>_for_exome_rounds.xlsx.`,
		Example: `  wes-report rounds 1234.wes.tsv
  wes-report rounds -f tsv -o rounds/ 1234.wes.tsv`,
		Args: usageArgs(cobra.ExactArgs(1)),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{
				keyOutputFormat: "format",
				keyOutput:       "output",
				keyWorkers:      "workers",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRounds(cmd, args[0])
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func runRounds(cmd *cobra.Command, input string) error {
	t, err := loadReport(input)
	if err != nil {
		return err
	}

	a := report.NewAssembler(viper.GetInt(keyWorkers))
	a.SetLogger(logger)
	groups, err := a.Rounds(t, loadFilters())
	if err != nil {
		return err
	}

	path, err := writeReport(groups, input, "_for_exome_rounds", false)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d groups to %s\n", len(groups), path)
	return nil
}
