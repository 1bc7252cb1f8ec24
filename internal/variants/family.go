package variants

import (
	"errors"
	"fmt"
)

// ReportType describes which family members were sequenced.
type ReportType string

const (
	Singleton ReportType = "singleton"
	Trio      ReportType = "trio"
)

var (
	// ErrUnknownReportType is returned for report types other than
	// singleton and trio.
	ErrUnknownReportType = errors.New("unknown report type")
	// ErrParentsRequired is returned when a trio classification is asked
	// for without both parental sample ids.
	ErrParentsRequired = errors.New("maternal and paternal sample ids are required")
)

// ParseReportType parses "singleton" or "trio".
func ParseReportType(s string) (ReportType, error) {
	switch ReportType(s) {
	case Singleton, Trio:
		return ReportType(s), nil
	}
	return "", fmt.Errorf("%w %q (want singleton or trio)", ErrUnknownReportType, s)
}

// Family identifies the samples of one report. Sample ids are the column
// suffixes used by Zygosity.* and Burden.* (see NormalizeID).
type Family struct {
	Proband string
	Mother  string
	Father  string
	Type    ReportType
}

// NewFamily builds a Family from raw family and sample ids. Parental ids
// may be empty for singletons.
func NewFamily(familyID, proband, mother, father string, rt ReportType) Family {
	f := Family{Proband: NormalizeID(familyID, proband), Type: rt}
	if mother != "" {
		f.Mother = NormalizeID(familyID, mother)
	}
	if father != "" {
		f.Father = NormalizeID(familyID, father)
	}
	return f
}

// HasParents reports whether both parental ids are set.
func (f Family) HasParents() bool {
	return f.Mother != "" && f.Father != ""
}

// Validate checks the report type and, for trios, the parental ids.
func (f Family) Validate() error {
	if f.Proband == "" {
		return errors.New("proband sample id is required")
	}
	switch f.Type {
	case Singleton:
		return nil
	case Trio:
		if !f.HasParents() {
			return fmt.Errorf("trio report: %w", ErrParentsRequired)
		}
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownReportType, f.Type)
}
