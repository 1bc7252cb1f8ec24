package table

import (
	"fmt"
	"strings"
)

// SchemaError reports a required column that is absent from the table.
type SchemaError struct {
	Column       string
	Alternatives []string // other names tried for the same column
}

func (e *SchemaError) Error() string {
	if len(e.Alternatives) == 0 {
		return fmt.Sprintf("missing required column %q", e.Column)
	}
	tried := make([]string, len(e.Alternatives))
	for i, alt := range e.Alternatives {
		tried[i] = fmt.Sprintf("%q", alt)
	}
	return fmt.Sprintf("missing required column %q (also tried %s)",
		e.Column, strings.Join(tried, ", "))
}

// ParseError represents an error while reading a report, with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("report parse error at line %d: %s", e.Line, e.Message)
}

// nullTokens are cell values read as "no value", matching the NA markers
// written by the upstream report generator.
var nullTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"<NA>": true,
}

// IsNull reports whether a cell holds no value.
func IsNull(cell string) bool {
	return nullTokens[strings.TrimSpace(cell)]
}
