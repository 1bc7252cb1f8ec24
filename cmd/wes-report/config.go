package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ccmbio/wes-report/internal/report"
)

// Config keys.
const (
	keyReportType    = "report_type"
	keyFamilyID      = "family_id"
	keyProbandID     = "proband_id"
	keyMaternalID    = "maternal_id"
	keyPaternalID    = "paternal_id"
	keyPanel         = "panel"
	keyOutputFormat  = "output_format"
	keyOutput        = "output"
	keyWorkers       = "workers"
	keySummaryPage   = "summary_page"
	keyTwoPass       = "compound_het.two_pass"
	keyMinQuality    = "filters.min_quality"
	keyMaxCohort     = "filters.max_cohort_count"
	keyMaxGnomadHom  = "filters.max_gnomad_hom"
	keyRoundsCohort  = "filters.rounds_max_cohort_count"
	keyClinVarPopmax = "filters.clinvar_min_popmax"
)

func setDefaults() {
	viper.SetDefault(keyOutputFormat, formatXLSX)
	viper.SetDefault(keyWorkers, 0)
	viper.SetDefault(keyTwoPass, false)
}

// loadFilters starts from the default cutoffs and applies any configured
// filters.* values.
func loadFilters() report.Filters {
	f := report.DefaultFilters()
	for _, field := range []struct {
		key string
		dst *float64
	}{
		{keyMinQuality, &f.MinQuality},
		{keyMaxCohort, &f.MaxCohortCount},
		{keyMaxGnomadHom, &f.MaxGnomadHom},
		{keyRoundsCohort, &f.RoundsMaxCohortCount},
		{keyClinVarPopmax, &f.ClinVarMinPopmax},
	} {
		if viper.IsSet(field.key) {
			*field.dst = viper.GetFloat64(field.key)
		}
	}
	return f
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage wes-report configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/" + configName + ".yaml.",
		Example: `  wes-report config                               # show all config
  wes-report config set filters.min_quality 400     # raise the quality cutoff
  wes-report config set compound_het.two_pass true  # order-independent de novo scan
  wes-report config get output_format               # get a value`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, args[0])
		},
	}
}

func runConfigShow(cmd *cobra.Command) error {
	settings := viper.AllSettings()
	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# Config file: %s\n", used)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "# No config file. Defaults are shown; see ~/%s.yaml\n", configName)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	// Parse boolean-like values
	switch value {
	case "true", "yes", "on":
		viper.Set(key, true)
	case "false", "no", "off":
		viper.Set(key, false)
	default:
		viper.Set(key, value)
	}

	cfgFile, err := defaultConfigPath()
	if err != nil {
		return err
	}
	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(cmd *cobra.Command, key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}
