package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccmbio/wes-report/internal/table"
)

func TestSummarize_Scenario(t *testing.T) {
	s, err := Summarize(FullSummary, SummaryInput{
		CADD: "20", SIFT: ".", PolyPhen: "0.9", VEST3: ".", REVEL: ".",
		GnomadAC: "0", GnomadHom: "0",
		TranscriptChange: "NM_000059.3:c.100A>G", Consequence: "missense_variant", Gene: "BRCA2",
		CohortCount: "1", Quality: "512.6", PLI: "0.99",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Considered)
	assert.Equal(t, 2, s.Pathogenic)
	assert.Equal(t,
		"CADD = 20; 2/2 tools predict an impact. 0 alleles and 0 homozygote(s) in gnomAD. "+
			"Seen 1 time(s) in C4R. Quality: 513. NM_000059.3:c.100A>G is a missense_variant variant in BRCA2. Gene plI: 0.99",
		s.Text)
}

func TestSummarize_Legacy(t *testing.T) {
	s, err := Summarize(LegacySummary, SummaryInput{
		CADD: "None", SIFT: "0.2", PolyPhen: "0.47", VEST3: "0.6", REVEL: "0.4",
		GnomadAC: "12", GnomadHom: "1",
		TranscriptChange: "c.5G>A", Consequence: "missense_variant", Gene: "TTN",
		CohortCount: "ignored", Quality: "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, s.Considered)
	assert.Equal(t, 1, s.Pathogenic)
	assert.Equal(t,
		"CADD = None; 1/4 tools predict an impact. 12 alleles and 1 homozygote(s) in gnomAD. "+
			"c.5G>A is a missense_variant variant in TTN.",
		s.Text)
}

func TestSummarize_PolyPhenCutoffDiffers(t *testing.T) {
	in := SummaryInput{CADD: ".", SIFT: ".", PolyPhen: "0.47", VEST3: ".", REVEL: "."}

	full, err := Summarize(FullSummary, in)
	require.NoError(t, err)
	legacy, err := Summarize(LegacySummary, in)
	require.NoError(t, err)

	assert.Equal(t, 1, full.Pathogenic)
	assert.Equal(t, 0, legacy.Pathogenic)
	assert.Equal(t, 1, full.Considered)
	assert.Equal(t, 1, legacy.Considered)
}

func TestSummarize_Thresholds(t *testing.T) {
	tests := []struct {
		name string
		in   SummaryInput
		want int
	}{
		{"cadd at cutoff", SummaryInput{CADD: "15"}, 1},
		{"cadd below", SummaryInput{CADD: "14.99"}, 0},
		{"sift at cutoff", SummaryInput{SIFT: "0.05"}, 0},
		{"sift below", SummaryInput{SIFT: "0.049"}, 1},
		{"polyphen at cutoff", SummaryInput{PolyPhen: "0.446"}, 0},
		{"vest3 at cutoff", SummaryInput{VEST3: "0.5"}, 0},
		{"vest3 above", SummaryInput{VEST3: "0.51"}, 1},
		{"revel above", SummaryInput{REVEL: "0.9"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Summarize(FullSummary, tt.in)
			require.NoError(t, err)
			assert.Equal(t, 1, s.Considered)
			assert.Equal(t, tt.want, s.Pathogenic)
		})
	}
}

func TestSummarize_SentinelsNeverCounted(t *testing.T) {
	for _, sentinel := range []string{"None", ".", "", "NaN"} {
		s, err := Summarize(FullSummary, SummaryInput{
			CADD: sentinel, SIFT: sentinel, PolyPhen: sentinel, VEST3: sentinel, REVEL: sentinel,
		})
		require.NoError(t, err)
		assert.Zero(t, s.Considered, sentinel)
		assert.Zero(t, s.Pathogenic, sentinel)
	}
}

func TestSummarize_PathogenicNeverExceedsConsidered(t *testing.T) {
	values := []string{"None", ".", "0", "0.01", "0.5", "0.9", "30"}
	for _, a := range values {
		for _, b := range values {
			s, err := Summarize(LegacySummary, SummaryInput{CADD: a, SIFT: b, PolyPhen: a, VEST3: b, REVEL: a})
			require.NoError(t, err)
			assert.LessOrEqual(t, s.Pathogenic, s.Considered)
		}
	}
}

func TestSummarize_NonNumericScore(t *testing.T) {
	_, err := Summarize(FullSummary, SummaryInput{REVEL: "high"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REVEL")
}

func TestRoundQuality(t *testing.T) {
	assert.Equal(t, "512", roundQuality("512.4"))
	assert.Equal(t, "2", roundQuality("2.5"))
	assert.Equal(t, "4", roundQuality("3.5"))
	assert.Equal(t, "PASS", roundQuality("PASS"))
	assert.Equal(t, "", roundQuality(""))
}

func TestSummarizer_Row(t *testing.T) {
	header := []string{
		"Gene", "Cadd_score", "Sift_score", "Polyphen_score", "Vest3_score", "Revel_score",
		"Gnomad_ac", "Gnomad_hom", "Refseq_change", "Variation",
		"C4R_WES_counts", "Quality", "Exac_pli_score",
	}
	tbl, err := table.New(header, [][]string{
		{"SCN1A", "25", "0.01", ".", ".", "0.7", "0", "0", "c.1A>T", "stop_gained", "4", "99.5", "1.0"},
	})
	require.NoError(t, err)

	// Without the schema adapter the cohort column cannot be resolved.
	_, err = NewSummarizer(tbl, FullSummary)
	var se *table.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ColCohortCount, se.Column)

	sum, err := NewSummarizer(Canonicalize(tbl), FullSummary)
	require.NoError(t, err)
	s, err := sum.Row(tbl.Row(0))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Considered)
	assert.Equal(t, 3, s.Pathogenic)
	assert.Contains(t, s.Text, "Seen 4 time(s) in C4R. Quality: 100.")

	// Legacy summaries need none of the extended columns.
	legacy, err := NewSummarizer(tbl, LegacySummary)
	require.NoError(t, err)
	s, err = legacy.Row(tbl.Row(0))
	require.NoError(t, err)
	assert.NotContains(t, s.Text, "C4R")
}
