package variants

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ccmbio/wes-report/internal/table"
)

// Comparison is the direction in which a score crosses its cutoff.
type Comparison int

const (
	AtLeast Comparison = iota // score >= cutoff
	Above                     // score > cutoff
	Below                     // score < cutoff
)

// Threshold is the point at which a prediction tool calls a variant damaging.
type Threshold struct {
	Cutoff  float64
	Compare Comparison
}

// Met reports whether v is on the damaging side of the threshold.
func (th Threshold) Met(v float64) bool {
	switch th.Compare {
	case AtLeast:
		return v >= th.Cutoff
	case Above:
		return v > th.Cutoff
	case Below:
		return v < th.Cutoff
	}
	return false
}

// SummaryConfig selects the per-tool thresholds and the sentence template.
type SummaryConfig struct {
	Name     string
	CADD     Threshold
	SIFT     Threshold
	PolyPhen Threshold
	VEST3    Threshold
	REVEL    Threshold
	// Extended adds cohort count, quality and gene pLI to the text.
	Extended bool
}

// FullSummary is used by the genome-rounds report.
var FullSummary = SummaryConfig{
	Name:     "full",
	CADD:     Threshold{Cutoff: CADDThreshold, Compare: AtLeast},
	SIFT:     Threshold{Cutoff: 0.05, Compare: Below},
	PolyPhen: Threshold{Cutoff: 0.446, Compare: Above},
	VEST3:    Threshold{Cutoff: 0.5, Compare: Above},
	REVEL:    Threshold{Cutoff: 0.5, Compare: Above},
	Extended: true,
}

// LegacySummary is used by the inheritance report and the standalone
// summary command. Its PolyPhen cutoff differs from FullSummary.
var LegacySummary = SummaryConfig{
	Name:     "legacy",
	CADD:     Threshold{Cutoff: CADDThreshold, Compare: AtLeast},
	SIFT:     Threshold{Cutoff: 0.05, Compare: Below},
	PolyPhen: Threshold{Cutoff: 0.5, Compare: Above},
	VEST3:    Threshold{Cutoff: 0.5, Compare: Above},
	REVEL:    Threshold{Cutoff: 0.5, Compare: Above},
}

// SummaryInput holds the raw cell values a summary is built from.
type SummaryInput struct {
	CADD, SIFT, PolyPhen, VEST3, REVEL string

	GnomadAC, GnomadHom string

	TranscriptChange string
	Consequence      string
	Gene             string

	// Only used when SummaryConfig.Extended is set.
	CohortCount string
	Quality     string
	PLI         string
}

// Summary is the pathogenicity tally of one variant.
type Summary struct {
	Pathogenic int // tools calling the variant damaging
	Considered int // tools with a score
	Text       string
}

// Summarize tallies the prediction tools and renders the summary sentence.
// Missing scores are skipped; a score that is neither missing nor numeric
// is an error.
func Summarize(cfg SummaryConfig, in SummaryInput) (Summary, error) {
	tools := []struct {
		name  string
		value string
		th    Threshold
	}{
		{"CADD", in.CADD, cfg.CADD},
		{"SIFT", in.SIFT, cfg.SIFT},
		{"PolyPhen", in.PolyPhen, cfg.PolyPhen},
		{"VEST3", in.VEST3, cfg.VEST3},
		{"REVEL", in.REVEL, cfg.REVEL},
	}

	var s Summary
	for _, tool := range tools {
		v, ok, err := parseScore(tool.value)
		if err != nil {
			return Summary{}, fmt.Errorf("%s score: %w", tool.name, err)
		}
		if !ok {
			continue
		}
		s.Considered++
		if tool.th.Met(v) {
			s.Pathogenic++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CADD = %s; %d/%d tools predict an impact. %s alleles and %s homozygote(s) in gnomAD.",
		in.CADD, s.Pathogenic, s.Considered, in.GnomadAC, in.GnomadHom)
	if cfg.Extended {
		fmt.Fprintf(&b, " Seen %s time(s) in C4R. Quality: %s. %s is a %s variant in %s. Gene plI: %s",
			in.CohortCount, roundQuality(in.Quality), in.TranscriptChange, in.Consequence, in.Gene, in.PLI)
	} else {
		fmt.Fprintf(&b, " %s is a %s variant in %s.", in.TranscriptChange, in.Consequence, in.Gene)
	}
	s.Text = b.String()
	return s, nil
}

// roundQuality rounds a numeric quality half-to-even; anything else is
// returned unchanged.
func roundQuality(q string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return q
	}
	return strconv.FormatFloat(math.RoundToEven(v), 'f', 0, 64)
}

// Summarizer builds summaries from the rows of one table. Columns are
// resolved once, when the summarizer is created.
type Summarizer struct {
	cfg SummaryConfig

	cadd, sift, polyphen, vest3, revel int
	ac, hom                            int
	change, consequence, gene          int
	cohort, quality, pli               int
}

// NewSummarizer resolves the columns cfg needs, failing on the first one
// that is absent.
func NewSummarizer(t *table.Table, cfg SummaryConfig) (*Summarizer, error) {
	cols := []string{
		ColCADD, ColSIFT, ColPolyPhen, ColVEST3, ColREVEL,
		ColGnomadAC, ColGnomadHom,
		ColRefseqChange, ColVariation, ColGene,
	}
	if cfg.Extended {
		cols = append(cols, ColCohortCount, ColQuality, ColPLI)
	}
	idx, err := t.Indices(cols...)
	if err != nil {
		return nil, err
	}

	s := &Summarizer{
		cfg:  cfg,
		cadd: idx[0], sift: idx[1], polyphen: idx[2], vest3: idx[3], revel: idx[4],
		ac: idx[5], hom: idx[6],
		change: idx[7], consequence: idx[8], gene: idx[9],
		cohort: -1, quality: -1, pli: -1,
	}
	if cfg.Extended {
		s.cohort, s.quality, s.pli = idx[10], idx[11], idx[12]
	}
	return s, nil
}

// Row summarises one row of the table the summarizer was built for.
func (s *Summarizer) Row(row []string) (Summary, error) {
	in := SummaryInput{
		CADD:             row[s.cadd],
		SIFT:             row[s.sift],
		PolyPhen:         row[s.polyphen],
		VEST3:            row[s.vest3],
		REVEL:            row[s.revel],
		GnomadAC:         row[s.ac],
		GnomadHom:        row[s.hom],
		TranscriptChange: row[s.change],
		Consequence:      row[s.consequence],
		Gene:             row[s.gene],
	}
	if s.cfg.Extended {
		in.CohortCount = row[s.cohort]
		in.Quality = row[s.quality]
		in.PLI = row[s.pli]
	}
	return Summarize(s.cfg, in)
}
