package report

import (
	"github.com/ccmbio/wes-report/internal/table"
	"github.com/ccmbio/wes-report/internal/variants"
)

// Format prepares a report for manual review: "None" scores are blanked,
// blank SIFT, PolyPhen and LoF o/e cells read ".", and a blank Notes column
// followed by Gene lead the columns. An empty HPO tab follows the variants.
func Format(t *table.Table) ([]Group, error) {
	t = variants.Canonicalize(t)

	blankNone := func(s string) string {
		if s == "None" {
			return ""
		}
		return s
	}
	dotNull := func(s string) string {
		if table.IsNull(s) {
			return "."
		}
		return s
	}

	steps := []struct {
		col string
		fn  func(string) string
	}{
		{variants.ColCADD, blankNone},
		{variants.ColSIFT, blankNone},
		{variants.ColPolyPhen, blankNone},
		{variants.ColGnomadOELoF, dotNull},
		{variants.ColSIFT, dotNull},
		{variants.ColPolyPhen, dotNull},
	}
	var err error
	for _, step := range steps {
		t, err = t.MapColumn(step.col, step.fn)
		if err != nil {
			return nil, err
		}
	}

	t, err = t.PrependColumn(NotesColumn, make([]string, t.Len()))
	if err != nil {
		return nil, err
	}
	t, err = t.MoveToFront(NotesColumn, variants.ColGene)
	if err != nil {
		return nil, err
	}

	hpo, err := table.New(nil, nil)
	if err != nil {
		return nil, err
	}
	return []Group{
		{Name: GroupVariants, Table: t},
		{Name: GroupHPO, Table: hpo},
	}, nil
}
