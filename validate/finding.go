// Package validate runs naming-convention and structural checks across an
// ontology and validates concrete data records against declared segments.
// Checks accumulate severity-tagged findings; nothing in this package
// prints or aborts.
package validate

import (
	"fmt"
	"strings"
)

// Severity classifies a finding.
type Severity string

const (
	// SeverityError marks a finding that makes the ontology invalid.
	SeverityError Severity = "error"

	// SeverityWarning marks a finding that is surfaced but does not
	// affect validity.
	SeverityWarning Severity = "warning"

	// SeverityInfo is defined for completeness; no current check emits it.
	SeverityInfo Severity = "info"
)

// Finding is one validation result. Findings are immutable once created
// and accumulated in check order.
type Finding struct {
	Message  string
	Severity Severity
	Location string
}

// String renders the finding as "SEVERITY at location: message".
func (f Finding) String() string {
	loc := ""
	if f.Location != "" {
		loc = " at " + f.Location
	}
	return fmt.Sprintf("%s%s: %s", strings.ToUpper(string(f.Severity)), loc, f.Message)
}

// Summary aggregates a validation run by severity.
type Summary struct {
	Total    int
	Errors   int
	Warnings int
	Info     int

	// Valid is true iff no error-severity findings were recorded.
	// Warnings and info never affect validity.
	Valid bool
}

func summarize(findings []Finding) Summary {
	s := Summary{Total: len(findings)}
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Info++
		}
	}
	s.Valid = s.Errors == 0
	return s
}
