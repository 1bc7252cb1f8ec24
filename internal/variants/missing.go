package variants

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ccmbio/wes-report/internal/table"
)

// IsMissing reports whether a cell carries no evidence: a null cell, ".",
// or "None".
func IsMissing(cell string) bool {
	if table.IsNull(cell) {
		return true
	}
	switch strings.TrimSpace(cell) {
	case ".", "None":
		return true
	}
	return false
}

// parseScore parses a numeric annotation. ok is false for missing cells.
func parseScore(cell string) (v float64, ok bool, err error) {
	if IsMissing(cell) {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false, fmt.Errorf("%q is not numeric", cell)
	}
	return v, true, nil
}

// parseCount parses a burden count; missing cells count as zero.
func parseCount(cell string) (float64, error) {
	v, ok, err := parseScore(cell)
	if err != nil || !ok {
		return 0, err
	}
	return v, nil
}
