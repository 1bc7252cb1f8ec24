package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ccmbio/wes-report/internal/duckdb"
	"github.com/ccmbio/wes-report/internal/output"
	"github.com/ccmbio/wes-report/internal/report"
)

// Output formats.
const (
	formatXLSX   = "xlsx"
	formatTSV    = "tsv"
	formatDuckDB = "duckdb"
)

// outputBase strips the compression and table extensions from a report path.
func outputBase(input string) string {
	base := strings.TrimSuffix(input, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputPath derives the output location from the input report. TSV output
// is a directory.
func outputPath(input, suffix, format string) (string, error) {
	if input == "-" {
		return "", usageErrorf("--output is required when reading from stdin")
	}
	base := outputBase(input) + suffix
	switch format {
	case formatXLSX:
		return base + ".xlsx", nil
	case formatTSV:
		return base, nil
	case formatDuckDB:
		return base + ".duckdb", nil
	}
	return "", usageErrorf("unknown output format %q (want xlsx, tsv or duckdb)", format)
}

// newSink opens the writer for format at path. Highlighting only applies to
// workbooks. For DuckDB the input report is recorded as the source.
func newSink(format, path, input string, highlight bool) (report.Sink, error) {
	switch format {
	case formatXLSX:
		w := output.NewXLSXWriter(path, highlight)
		w.SetLogger(logger)
		return w, nil
	case formatTSV:
		w, err := output.NewTSVWriter(path)
		if err != nil {
			return nil, err
		}
		w.SetLogger(logger)
		return w, nil
	case formatDuckDB:
		s, err := duckdb.Open(path)
		if err != nil {
			return nil, err
		}
		s.SetLogger(logger)
		if input != "-" {
			fp, err := duckdb.StatFile(input)
			if err == nil {
				err = s.RecordSource(fp)
			}
			if err != nil {
				s.Close()
				return nil, err
			}
		}
		return s, nil
	}
	return nil, usageErrorf("unknown output format %q (want xlsx, tsv or duckdb)", format)
}

// writeReport resolves the output location, writes every group and closes
// the sink.
func writeReport(groups []report.Group, input, suffix string, highlight bool) (string, error) {
	format := strings.ToLower(viper.GetString(keyOutputFormat))
	path := viper.GetString(keyOutput)
	if path == "" {
		var err error
		path, err = outputPath(input, suffix, format)
		if err != nil {
			return "", err
		}
	}

	sink, err := newSink(format, path, input, highlight)
	if err != nil {
		return "", err
	}
	if err := report.WriteGroups(sink, groups); err != nil {
		sink.Close()
		return "", err
	}
	if err := sink.Close(); err != nil {
		return "", fmt.Errorf("close %s output: %w", format, err)
	}

	logger.Info("wrote report",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("groups", len(groups)))
	return path, nil
}
