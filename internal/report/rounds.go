package report

import (
	"go.uber.org/zap"

	"github.com/ccmbio/wes-report/internal/table"
	"github.com/ccmbio/wes-report/internal/variants"
)

// Rounds builds the genome-rounds report: every variant, the rare
// high-quality subset, and that subset restricted to OMIM genes followed by
// the common (possibly ClinVar-relevant) variants.
func (a *Assembler) Rounds(t *table.Table, f Filters) ([]Group, error) {
	t = variants.Canonicalize(t)

	t, err := AddSummary(t, variants.FullSummary)
	if err != nil {
		return nil, err
	}

	common, err := keepNumeric(t, variants.ColGnomadAFPopmax, func(af float64) bool { return af > f.ClinVarMinPopmax })
	if err != nil {
		return nil, err
	}

	rare, err := keepNumeric(t, variants.ColCohortCount, func(n float64) bool { return n < f.RoundsMaxCohortCount })
	if err != nil {
		return nil, err
	}
	rare, err = keepNumeric(rare, variants.ColGnomadHom, func(n float64) bool { return n <= f.MaxGnomadHom })
	if err != nil {
		return nil, err
	}
	rare, err = keepNumeric(rare, variants.ColQuality, func(q float64) bool { return q >= f.MinQuality })
	if err != nil {
		return nil, err
	}

	omimIdx, err := rare.Index(variants.ColOMIMPhenotype)
	if err != nil {
		return nil, err
	}
	omim := rare.Filter(func(row []string) bool { return !variants.IsMissing(row[omimIdx]) })
	omimCommon, err := omim.Concat(common)
	if err != nil {
		return nil, err
	}

	a.logger.Info("filtered variants for rounds",
		zap.Int("all", t.Len()),
		zap.Int("rare_high_qual", rare.Len()),
		zap.Int("omim", omim.Len()),
		zap.Int("common", common.Len()))

	return []Group{
		{Name: GroupAll, Table: t},
		{Name: GroupRareHighQual, Table: rare},
		{Name: GroupRareHighQualOMIM, Table: omimCommon},
	}, nil
}
