// Package variants classifies annotated variants into inheritance-pattern
// groups and summarises their pathogenicity predictions.
package variants

import (
	"strings"

	"github.com/ccmbio/wes-report/internal/table"
)

// Report columns read by the classifier and summary generator.
const (
	ColGene              = "Gene"
	ColPosition          = "Position"
	ColOMIMPhenotype     = "omim_phenotype"
	ColOMIMInheritance   = "omim_inheritance"
	ColClinVar           = "Clinvar"
	ColVariation         = "Variation"
	ColRefseqChange      = "Refseq_change"
	ColCADD              = "Cadd_score"
	ColSIFT              = "Sift_score"
	ColPolyPhen          = "Polyphen_score"
	ColVEST3             = "Vest3_score"
	ColREVEL             = "Revel_score"
	ColGnomadAC          = "Gnomad_ac"
	ColGnomadHom         = "Gnomad_hom"
	ColGnomadAFPopmax    = "Gnomad_af_popmax"
	ColGnomadOELoF       = "Gnomad_oe_lof_score"
	ColPLI               = "Exac_pli_score"
	ColQuality           = "Quality"
	ColPanels            = "Panels"
	ColCohortCount       = "Frequency_in_C4R"
	ColCohortCountLegacy = "C4R_WES_counts"
)

// Zygosity calls as written in the Zygosity.<sample> columns.
const (
	Hom    = "Hom"
	Het    = "Het"
	NoCall = "-"
)

// ZygosityKey returns the zygosity column name for a sample.
func ZygosityKey(sampleID string) string {
	return "Zygosity." + sampleID
}

// BurdenKey returns the burden column name for a sample.
func BurdenKey(sampleID string) string {
	return "Burden." + sampleID
}

// NormalizeID builds the column suffix of a sample: family and sample ids
// joined by "_", with hyphens replaced by underscores.
func NormalizeID(familyID, sampleID string) string {
	familyID = strings.ReplaceAll(familyID, "-", "_")
	sampleID = strings.ReplaceAll(sampleID, "-", "_")
	return familyID + "_" + sampleID
}

// Canonicalize registers the cohort-frequency column under its canonical
// name. Older reports call it C4R_WES_counts; after this step every lookup
// uses ColCohortCount.
func Canonicalize(t *table.Table) *table.Table {
	return t.WithAlias(ColCohortCount, ColCohortCountLegacy)
}
