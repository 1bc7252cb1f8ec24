package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/ccmbio/wes-report/internal/table"
	"github.com/ccmbio/wes-report/internal/variants"
)

// Prioritize builds the inheritance report of one family: a legacy summary
// column, the quality filter, the singleton rarity and impact filters, then
// one group per inheritance pattern. Empty groups are kept.
func (a *Assembler) Prioritize(ctx context.Context, t *table.Table, fam variants.Family, opts Options) ([]Group, error) {
	if err := fam.Validate(); err != nil {
		return nil, err
	}
	t = variants.Canonicalize(t)

	t, err := AddSummary(t, variants.LegacySummary)
	if err != nil {
		return nil, err
	}

	total := t.Len()
	f := opts.Filters
	t, err = keepNumeric(t, variants.ColQuality, func(q float64) bool { return q >= f.MinQuality })
	if err != nil {
		return nil, err
	}

	if fam.Type == variants.Singleton {
		t, err = keepNumeric(t, variants.ColCohortCount, func(n float64) bool { return n < f.MaxCohortCount })
		if err != nil {
			return nil, err
		}
		t, err = keepNumeric(t, variants.ColGnomadHom, func(n float64) bool { return n <= f.MaxGnomadHom })
		if err != nil {
			return nil, err
		}
		t, err = highImpact(t)
		if err != nil {
			return nil, err
		}
	}
	a.logger.Info("pre-filtered variants",
		zap.String("report_type", string(fam.Type)),
		zap.Int("input", total),
		zap.Int("kept", t.Len()))

	var jobs []job
	if fam.Type == variants.Trio {
		jobs = append(jobs, job{GroupDeNovo, func(t *table.Table) (*table.Table, error) {
			return variants.DeNovo(t, fam)
		}})
	} else {
		jobs = append(jobs, job{GroupDominantNonOMIM, func(t *table.Table) (*table.Table, error) {
			return constrainedLoF(t, fam)
		}})
	}
	jobs = append(jobs,
		job{GroupAutosomalRecessive, func(t *table.Table) (*table.Table, error) {
			return variants.AutosomalRecessive(t, fam)
		}},
		job{GroupCompoundHet, func(t *table.Table) (*table.Table, error) {
			return variants.CompoundHet(t, fam, opts.CompoundHet)
		}},
		job{GroupHemizygous, func(t *table.Table) (*table.Table, error) {
			return variants.Hemizygous(t, fam)
		}},
		job{GroupDominantOMIM, func(t *table.Table) (*table.Table, error) {
			return variants.DominantOMIM(t, fam)
		}},
	)
	if opts.Panel {
		jobs = append(jobs, job{GroupPanels, func(t *table.Table) (*table.Table, error) {
			return panelCADD(t, fam)
		}})
	}

	groups, err := a.classify(ctx, t, jobs)
	if err != nil {
		return nil, err
	}
	if fam.Type == variants.Singleton && opts.CoverPage != nil {
		groups = append([]Group{{Name: GroupSummaryPage, Table: opts.CoverPage}}, groups...)
	}
	return groups, nil
}

// highImpact keeps ClinVar-pathogenic or protein-altering variants.
func highImpact(t *table.Table) (*table.Table, error) {
	idx, err := t.Indices(variants.ColVariation, variants.ColClinVar)
	if err != nil {
		return nil, err
	}
	return t.Filter(func(row []string) bool {
		return variants.IsHighImpact(row[idx[0]], row[idx[1]])
	}), nil
}

// constrainedLoF narrows dominant non-OMIM variants to loss-of-function
// variants in constrained genes.
func constrainedLoF(t *table.Table, fam variants.Family) (*table.Table, error) {
	out, err := variants.DominantNonOMIM(t, fam)
	if err != nil {
		return nil, err
	}
	idx, err := out.Indices(variants.ColPLI, variants.ColVariation)
	if err != nil {
		return nil, err
	}
	return out.Filter(func(row []string) bool {
		return variants.IsConstrainedGene(row[idx[0]]) && variants.IsLossOfFunction(row[idx[1]])
	}), nil
}

// panelCADD returns panel variants that pass the CADD filter.
func panelCADD(t *table.Table, fam variants.Family) (*table.Table, error) {
	out, err := variants.Panel(t, fam)
	if err != nil {
		return nil, err
	}
	cadd, err := out.Index(variants.ColCADD)
	if err != nil {
		return nil, err
	}
	return out.Filter(func(row []string) bool { return variants.PassesCADD(row[cadd]) }), nil
}
