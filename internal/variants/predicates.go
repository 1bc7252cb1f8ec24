package variants

import (
	"strconv"
	"strings"
)

// Score cutoffs used by the filters.
const (
	CADDThreshold = 15.0
	// PLIThreshold marks a gene as loss-of-function intolerant when filtering.
	PLIThreshold = 0.95
	// PLIHighlightThreshold is the looser cutoff used to highlight pLI in
	// formatted workbooks.
	PLIHighlightThreshold = 0.9
)

// Molecular consequence terms (Sequence Ontology).
const (
	ConsequenceFrameshiftVariant = "frameshift_variant"
	ConsequenceInframeDeletion   = "inframe_deletion"
	ConsequenceInframeInsertion  = "inframe_insertion"
	ConsequenceMissenseVariant   = "missense_variant"
	ConsequenceProteinAltering   = "protein_altering_variant"
	ConsequenceSpliceAcceptor    = "splice_acceptor_variant"
	ConsequenceSpliceDonor       = "splice_donor_variant"
	ConsequenceStartLost         = "start_lost"
	ConsequenceStopGained        = "stop_gained"
	ConsequenceStopLost          = "stop_lost"
)

var deleteriousConsequences = map[string]bool{
	ConsequenceFrameshiftVariant: true,
	ConsequenceInframeDeletion:   true,
	ConsequenceInframeInsertion:  true,
	ConsequenceMissenseVariant:   true,
	ConsequenceProteinAltering:   true,
	ConsequenceSpliceAcceptor:    true,
	ConsequenceSpliceDonor:       true,
	ConsequenceStartLost:         true,
	ConsequenceStopGained:        true,
	ConsequenceStopLost:          true,
}

var lossOfFunctionConsequences = map[string]bool{
	ConsequenceFrameshiftVariant: true,
	ConsequenceSpliceAcceptor:    true,
	ConsequenceSpliceDonor:       true,
	ConsequenceStartLost:         true,
	ConsequenceStopGained:        true,
}

// PassesCADD reports whether a variant clears the CADD filter. Variants
// without a CADD score are kept.
func PassesCADD(cadd string) bool {
	v, ok := parseEvidence(cadd)
	if !ok {
		return IsMissing(cadd)
	}
	return v >= CADDThreshold
}

// IsHighImpact reports whether a variant is ClinVar pathogenic or has a
// protein-altering consequence.
func IsHighImpact(consequence, clinvar string) bool {
	if strings.Contains(strings.ToLower(clinvar), "pathogenic") {
		return true
	}
	return deleteriousConsequences[consequence]
}

// IsConstrainedGene reports whether pLI >= PLIThreshold.
func IsConstrainedGene(pli string) bool {
	v, ok := parseEvidence(pli)
	return ok && v >= PLIThreshold
}

// IsHighlightedPLI reports whether pLI > PLIHighlightThreshold.
func IsHighlightedPLI(pli string) bool {
	v, ok := parseEvidence(pli)
	return ok && v > PLIHighlightThreshold
}

// IsLossOfFunction reports whether a consequence truncates or abolishes the
// protein product.
func IsLossOfFunction(consequence string) bool {
	return lossOfFunctionConsequences[consequence]
}

// parseEvidence parses a score for a predicate. Missing and non-numeric
// values are both reported as !ok.
func parseEvidence(cell string) (float64, bool) {
	if IsMissing(cell) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
