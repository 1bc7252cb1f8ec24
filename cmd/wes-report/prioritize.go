package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ccmbio/wes-report/internal/report"
	"github.com/ccmbio/wes-report/internal/table"
	"github.com/ccmbio/wes-report/internal/variants"
)

func newPrioritizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prioritize [flags] <report>",
		Short: "Group a family's variants by inheritance pattern",
		Long: `Group the variants of a family's exome report by inheritance pattern.

Each variant gets a pathogenicity summary. Variants below the quality cutoff
are dropped; singleton reports are further restricted to rare, high-impact
variants. The groups are written as worksheets (default <report>_formatted.xlsx),
TSV files or DuckDB tables.`,
		Example: `  wes-report prioritize --type trio --family 1234 --proband 1234_CH0001 \
    --mother 1234_CH0002 --father 1234_CH0003 1234.wes.csv
  wes-report prioritize --type singleton --family 1234 --proband 1234_CH0001 --panel 1234.wes.csv
  wes-report prioritize -f duckdb -o 1234.duckdb --family 1234 --proband P 1234.wes.csv`,
		Args: usageArgs(cobra.ExactArgs(1)),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{
				keyReportType:   "type",
				keyFamilyID:     "family",
				keyProbandID:    "proband",
				keyMaternalID:   "mother",
				keyPaternalID:   "father",
				keyPanel:        "panel",
				keyOutputFormat: "format",
				keyOutput:       "output",
				keyWorkers:      "workers",
				keySummaryPage:  "summary-page",
				keyTwoPass:      "two-pass",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrioritize(cmd, args[0])
		},
	}

	cmd.Flags().StringP("type", "t", "", "Report type: singleton or trio")
	cmd.Flags().String("family", "", "Family id")
	cmd.Flags().String("proband", "", "Proband sample id")
	cmd.Flags().String("mother", "", "Maternal sample id (trio)")
	cmd.Flags().String("father", "", "Paternal sample id (trio)")
	cmd.Flags().Bool("panel", false, "Add a Panels group for variants annotated with a gene panel")
	cmd.Flags().String("summary-page", "", "CSV written first as the Summary tab of singleton reports")
	cmd.Flags().Bool("two-pass", false, "Collect compound-het de novo genes before filtering")
	addOutputFlags(cmd)

	return cmd
}

// addOutputFlags registers the flags shared by every report command.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", formatXLSX, "Output format: xlsx, tsv, duckdb")
	cmd.Flags().StringP("output", "o", "", "Output path (default derived from the report name)")
	cmd.Flags().IntP("workers", "j", 0, "Classification workers (0 = all CPUs)")
}

// bindFlags binds flags of cmd to viper keys, so config file and environment
// values apply when a flag is not given.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// loadReport reads the input report and logs its shape.
func loadReport(path string) (*table.Table, error) {
	start := time.Now()
	t, err := table.Load(path, table.Options{})
	if err != nil {
		return nil, err
	}
	logger.Info("loaded report",
		zap.String("path", path),
		zap.Int("variants", t.Len()),
		zap.Int("columns", t.Width()),
		zap.Duration("elapsed", time.Since(start)))
	return t, nil
}

func familyFromConfig() (variants.Family, error) {
	rt, err := variants.ParseReportType(viper.GetString(keyReportType))
	if err != nil {
		return variants.Family{}, &usageError{err: err}
	}
	familyID := viper.GetString(keyFamilyID)
	proband := viper.GetString(keyProbandID)
	if familyID == "" || proband == "" {
		return variants.Family{}, usageErrorf("--family and --proband are required")
	}
	fam := variants.NewFamily(familyID, proband,
		viper.GetString(keyMaternalID), viper.GetString(keyPaternalID), rt)
	if err := fam.Validate(); err != nil {
		return variants.Family{}, &usageError{err: err}
	}
	return fam, nil
}

func runPrioritize(cmd *cobra.Command, input string) error {
	fam, err := familyFromConfig()
	if err != nil {
		return err
	}

	t, err := loadReport(input)
	if err != nil {
		return err
	}

	opts := report.Options{
		Panel:   viper.GetBool(keyPanel),
		Filters: loadFilters(),
	}
	if viper.GetBool(keyTwoPass) {
		opts.CompoundHet.DeNovoScan = variants.TwoPass
	}
	if page := viper.GetString(keySummaryPage); page != "" && fam.Type == variants.Singleton {
		opts.CoverPage, err = table.Load(page, table.Options{})
		if err != nil {
			return fmt.Errorf("summary page: %w", err)
		}
	}

	a := report.NewAssembler(viper.GetInt(keyWorkers))
	a.SetLogger(logger)
	groups, err := a.Prioritize(cmd.Context(), t, fam, opts)
	if err != nil {
		return err
	}

	path, err := writeReport(groups, input, "_formatted", false)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d groups to %s\n", len(groups), path)
	return nil
}
