// Package report assembles variant reports: it applies the quality and
// frequency pre-filters, fans the table out to the inheritance classifiers
// and hands the resulting named groups to a Sink.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ccmbio/wes-report/internal/table"
	"github.com/ccmbio/wes-report/internal/variants"
)

// Group names, used as worksheet or table names by the sinks.
const (
	GroupSummaryPage        = "Summary"
	GroupDeNovo             = "De_novo"
	GroupDominantNonOMIM    = "Dominant_nonOMIM"
	GroupAutosomalRecessive = "Autosomal_recessive"
	GroupCompoundHet        = "Compound_heterozygous"
	GroupHemizygous         = "Hemizygous"
	GroupDominantOMIM       = "Dominant_OMIM"
	GroupPanels             = "Panels"
	GroupAll                = "all"
	GroupRareHighQual       = "rare_high_qual"
	GroupRareHighQualOMIM   = "rare_high_qual_omim"
	GroupVariants           = "Variants"
	GroupHPO                = "HPO"
)

// Columns added by the assembler.
const (
	SummaryColumn = "Summary"
	NotesColumn   = "Notes"
)

// Group is a named, ordered set of rows.
type Group struct {
	Name  string
	Table *table.Table
}

// Sink receives the groups of a report in order.
type Sink interface {
	WriteGroup(g Group) error
	Close() error
}

// WriteGroups writes every group to sink, in order.
func WriteGroups(sink Sink, groups []Group) error {
	for _, g := range groups {
		if err := sink.WriteGroup(g); err != nil {
			return fmt.Errorf("write group %s: %w", g.Name, err)
		}
	}
	return nil
}

// Filters holds the pre-filter cutoffs applied before classification.
type Filters struct {
	MinQuality           float64
	MaxCohortCount       float64 // singleton inheritance report, exclusive
	MaxGnomadHom         float64 // inclusive
	RoundsMaxCohortCount float64 // genome-rounds report, exclusive
	ClinVarMinPopmax     float64 // exclusive
}

// DefaultFilters returns the cutoffs used by the clinical reports.
func DefaultFilters() Filters {
	return Filters{
		MinQuality:           300,
		MaxCohortCount:       100,
		MaxGnomadHom:         0,
		RoundsMaxCohortCount: 10,
		ClinVarMinPopmax:     0.01,
	}
}

// Options configures the inheritance report.
type Options struct {
	Panel       bool
	CompoundHet variants.CompoundHetOptions
	Filters     Filters
	// CoverPage, when set, is written first as the Summary tab of
	// singleton reports.
	CoverPage *table.Table
}

// Assembler builds reports.
type Assembler struct {
	workers int
	logger  *zap.Logger
}

// NewAssembler creates an assembler that classifies groups with the given
// number of workers. If workers is 0, runtime.NumCPU() is used.
func NewAssembler(workers int) *Assembler {
	return &Assembler{
		workers: workers,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for progress messages.
func (a *Assembler) SetLogger(l *zap.Logger) {
	a.logger = l
}

// AddSummary prepends a Summary column describing each row.
func AddSummary(t *table.Table, cfg variants.SummaryConfig) (*table.Table, error) {
	sum, err := variants.NewSummarizer(t, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s summary: %w", cfg.Name, err)
	}
	texts := make([]string, t.Len())
	for i := range t.Len() {
		s, err := sum.Row(t.Row(i))
		if err != nil {
			return nil, fmt.Errorf("%s summary: row %d: %w", cfg.Name, i+1, err)
		}
		texts[i] = s.Text
	}
	return t.PrependColumn(SummaryColumn, texts)
}

// keepNumeric keeps rows whose value in col satisfies keep. Null cells are
// dropped; non-numeric cells are an error.
func keepNumeric(t *table.Table, col string, keep func(float64) bool) (*table.Table, error) {
	idx, err := t.Index(col)
	if err != nil {
		return nil, err
	}
	return t.FilterErr(func(row []string) (bool, error) {
		cell := row[idx]
		if table.IsNull(cell) {
			return false, nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return false, fmt.Errorf("%s: %q is not numeric", col, cell)
		}
		return keep(v), nil
	})
}
