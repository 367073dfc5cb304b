package domain

import "fmt"

// Diagnostic kinds. All of these are recoverable: the run records them and
// keeps iterating over the remaining combinations and columns.
const (
	DiagMissingHierarchyLeaf  = "MISSING_HIERARCHY_LEAF"
	DiagHierarchyCycle        = "HIERARCHY_CYCLE"
	DiagUnresolvedProductType = "UNRESOLVED_PRODUCT_TYPE"
	DiagEmptyFilterPredicate  = "EMPTY_FILTER_PREDICATE"
	DiagNoColumnMatch         = "NO_COLUMN_MATCH"
)

// Diag is one recoverable degradation recorded during a run.
type Diag struct {
	Kind    string
	Subject string // member code, combination code, or column reference
	Message string
}

func (d Diag) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Subject, d.Message)
}

// Diagnostics collects per-run degradation records. It is owned by exactly
// one run and never shared across metadata snapshots.
type Diagnostics struct {
	diags []Diag
}

// Add records a diagnostic.
func (d *Diagnostics) Add(kind, subject, format string, args ...interface{}) {
	d.diags = append(d.diags, Diag{
		Kind:    kind,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// All returns the recorded diagnostics in insertion order.
func (d *Diagnostics) All() []Diag {
	return d.diags
}

// Count returns the number of recorded diagnostics.
func (d *Diagnostics) Count() int { return len(d.diags) }

// CountKind returns the number of diagnostics of one kind.
func (d *Diagnostics) CountKind(kind string) int {
	n := 0
	for _, diag := range d.diags {
		if diag.Kind == kind {
			n++
		}
	}
	return n
}
