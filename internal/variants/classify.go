package variants

import (
	"fmt"
	"strings"

	"github.com/ccmbio/wes-report/internal/table"
)

// trio holds the zygosity columns of a family.
type trio struct {
	proband, mother, father int
}

func (c trio) calls(row []string) (proband, mother, father string) {
	return row[c.proband], row[c.mother], row[c.father]
}

func probandColumn(t *table.Table, f Family) (int, error) {
	return t.Index(ZygosityKey(f.Proband))
}

func trioColumns(t *table.Table, f Family) (trio, error) {
	if !f.HasParents() {
		return trio{}, ErrParentsRequired
	}
	idx, err := t.Indices(ZygosityKey(f.Proband), ZygosityKey(f.Mother), ZygosityKey(f.Father))
	if err != nil {
		return trio{}, err
	}
	return trio{idx[0], idx[1], idx[2]}, nil
}

// onX reports whether a position lies on chromosome X. ok is false when the
// position is null, in which case the row matches neither side.
func onX(position string) (x, ok bool) {
	if table.IsNull(position) {
		return false, false
	}
	return strings.Contains(position, "X"), true
}

// AutosomalRecessive returns homozygous proband variants. Singletons exclude
// chromosome X; trios require both parents to be heterozygous carriers.
// Sorted by (omim_phenotype, Gene).
func AutosomalRecessive(t *table.Table, f Family) (*table.Table, error) {
	var out *table.Table
	switch f.Type {
	case Singleton:
		idx, err := t.Indices(ZygosityKey(f.Proband), ColPosition)
		if err != nil {
			return nil, err
		}
		zyg, pos := idx[0], idx[1]
		out = t.Filter(func(row []string) bool {
			x, ok := onX(row[pos])
			return row[zyg] == Hom && ok && !x
		})
	case Trio:
		c, err := trioColumns(t, f)
		if err != nil {
			return nil, err
		}
		out = t.Filter(func(row []string) bool {
			p, m, d := c.calls(row)
			return p == Hom && m == Het && d == Het
		})
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownReportType, f.Type)
	}
	return out.SortStable(ColOMIMPhenotype, ColGene)
}

// Hemizygous returns homozygous proband calls on chromosome X. For trios
// the maternally inherited calls come first, then the paternally inherited
// ones. Sorted by (omim_phenotype, Gene).
func Hemizygous(t *table.Table, f Family) (*table.Table, error) {
	var out *table.Table
	switch f.Type {
	case Singleton:
		idx, err := t.Indices(ZygosityKey(f.Proband), ColPosition)
		if err != nil {
			return nil, err
		}
		zyg, pos := idx[0], idx[1]
		out = t.Filter(func(row []string) bool {
			x, ok := onX(row[pos])
			return row[zyg] == Hom && ok && x
		})
	case Trio:
		c, err := trioColumns(t, f)
		if err != nil {
			return nil, err
		}
		hom := t.Filter(func(row []string) bool { return row[c.proband] == Hom })
		maternal := hom.Filter(func(row []string) bool {
			return row[c.mother] == Het && row[c.father] == NoCall
		})
		paternal := hom.Filter(func(row []string) bool {
			return row[c.mother] == NoCall && row[c.father] == Het
		})
		out, err = maternal.Concat(paternal)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownReportType, f.Type)
	}
	return out.SortStable(ColOMIMPhenotype, ColGene)
}

// DominantNonOMIM returns heterozygous proband variants in genes without a
// known OMIM phenotype. Sorted by (Gnomad_ac, Gene).
func DominantNonOMIM(t *table.Table, f Family) (*table.Table, error) {
	idx, err := t.Indices(ZygosityKey(f.Proband), ColOMIMPhenotype)
	if err != nil {
		return nil, err
	}
	zyg, omim := idx[0], idx[1]
	out := t.Filter(func(row []string) bool {
		return row[zyg] == Het && IsMissing(row[omim])
	})
	return out.SortStable(ColGnomadAC, ColGene)
}

// DominantOMIM returns heterozygous proband variants in genes with a known
// OMIM phenotype. Sorted by (omim_inheritance, Gnomad_ac).
func DominantOMIM(t *table.Table, f Family) (*table.Table, error) {
	idx, err := t.Indices(ZygosityKey(f.Proband), ColOMIMPhenotype)
	if err != nil {
		return nil, err
	}
	zyg, omim := idx[0], idx[1]
	out := t.Filter(func(row []string) bool {
		return row[zyg] == Het && !IsMissing(row[omim])
	})
	return out.SortStable(ColOMIMInheritance, ColGnomadAC)
}

// DeNovo returns variants called in the proband and in neither parent.
// Sorted by (omim_phenotype, Gene).
func DeNovo(t *table.Table, f Family) (*table.Table, error) {
	c, err := trioColumns(t, f)
	if err != nil {
		return nil, err
	}
	out := t.Filter(func(row []string) bool {
		p, m, d := c.calls(row)
		return (p == Het || p == Hom) && m == NoCall && d == NoCall
	})
	return out.SortStable(ColOMIMPhenotype, ColGene)
}

// Panel returns proband variants in genes tagged with a gene panel.
// Sorted by (omim_inheritance, Gnomad_ac).
func Panel(t *table.Table, f Family) (*table.Table, error) {
	idx, err := t.Indices(ZygosityKey(f.Proband), ColPanels)
	if err != nil {
		return nil, err
	}
	zyg, panels := idx[0], idx[1]
	out := t.Filter(func(row []string) bool {
		return (row[zyg] == Het || row[zyg] == Hom) && !table.IsNull(row[panels])
	})
	return out.SortStable(ColOMIMInheritance, ColGnomadAC)
}
