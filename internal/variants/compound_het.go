package variants

import (
	"fmt"

	"github.com/ccmbio/wes-report/internal/table"
)

// MinCompoundHetBurden is the number of rare proband variants a gene must
// carry to be considered for compound heterozygosity.
const MinCompoundHetBurden = 2

// DeNovoScan selects how compound-het de novo genes are collected.
type DeNovoScan int

const (
	// SinglePass grows the de novo gene set while walking the rows, so a
	// row only matches a de novo gene found at or before it.
	SinglePass DeNovoScan = iota
	// TwoPass collects every de novo gene first, so row order does not
	// affect the result.
	TwoPass
)

// CompoundHetOptions configures CompoundHet.
type CompoundHetOptions struct {
	DeNovoScan DeNovoScan
}

// CompoundHet returns heterozygous proband variants in genes with at least
// MinCompoundHetBurden qualifying variants. For trios a row is kept when
// its gene has both a maternally and a paternally inherited qualifying
// variant, when the row itself is de novo, or when its gene already holds a
// de novo variant. Sorted by (omim_phenotype, Gene).
func CompoundHet(t *table.Table, f Family, opts CompoundHetOptions) (*table.Table, error) {
	idx, err := t.Indices(ColGene, BurdenKey(f.Proband))
	if err != nil {
		return nil, err
	}
	gene, burden := idx[0], idx[1]
	zyg, err := probandColumn(t, f)
	if err != nil {
		return nil, err
	}

	qualifying, err := t.FilterErr(func(row []string) (bool, error) {
		n, err := parseCount(row[burden])
		if err != nil {
			return false, fmt.Errorf("%s: %w", BurdenKey(f.Proband), err)
		}
		return n >= MinCompoundHetBurden, nil
	})
	if err != nil {
		return nil, err
	}
	het := qualifying.Filter(func(row []string) bool { return row[zyg] == Het })

	switch f.Type {
	case Singleton:
		return het.SortStable(ColOMIMPhenotype, ColGene)
	case Trio:
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownReportType, f.Type)
	}

	c, err := trioColumns(t, f)
	if err != nil {
		return nil, err
	}

	maternal := make(map[string]bool)
	paternal := make(map[string]bool)
	for i := range qualifying.Len() {
		row := qualifying.Row(i)
		_, m, d := c.calls(row)
		switch {
		case m == Het && d == NoCall:
			maternal[row[gene]] = true
		case d == Het && m == NoCall:
			paternal[row[gene]] = true
		}
	}

	isDeNovo := func(row []string) bool {
		p, m, d := c.calls(row)
		return p == Het && m == NoCall && d == NoCall
	}

	deNovoGenes := make(map[string]bool)
	if opts.DeNovoScan == TwoPass {
		for i := range het.Len() {
			if row := het.Row(i); isDeNovo(row) {
				deNovoGenes[row[gene]] = true
			}
		}
	}

	// Filter visits rows in table order, which SinglePass relies on.
	out := het.Filter(func(row []string) bool {
		g := row[gene]
		switch {
		case maternal[g] && paternal[g]:
			return true
		case isDeNovo(row):
			deNovoGenes[g] = true
			return true
		case deNovoGenes[g]:
			return true
		}
		return false
	})
	return out.SortStable(ColOMIMPhenotype, ColGene)
}
