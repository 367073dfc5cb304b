// Package filter generates the per-cell filter source consumed by the
// downstream report executor. Generation goes through a structured model
// built from the run's caches and a template renderer, so the semantics
// are testable independent of textual formatting.
package filter

import (
	"regexp"
	"strings"
)

// FileModel is one generated source file: every cell class of a report
// template plus the member-predicate stub names the classes refer to.
type FileModel struct {
	Template string
	Classes  []ClassModel
	Stubs    []string // stub identifiers, first-seen order
}

// ClassModel is one report-cell class.
type ClassModel struct {
	Name            string
	CombinationCode string
	MetricVariable  string // variable code summed per matching row; empty counts rows
	NeverMatch      bool   // some selector expanded to zero members
	Conjuncts       []ConjunctModel
	Products        []string // product table aliases scanned by the initialiser
}

// ConjunctModel is the member restriction one selector contributes to the
// cell predicate: an OR-chain of equality tests over the expanded codes.
// A wildcard conjunct stems from the "no restriction" sentinel and
// contributes nothing.
type ConjunctModel struct {
	Variable string
	Codes    []string
	Wildcard bool
}

// ActiveConjuncts returns the conjuncts that restrict the predicate.
func (c ClassModel) ActiveConjuncts() []ConjunctModel {
	var out []ConjunctModel
	for _, conj := range c.Conjuncts {
		if !conj.Wildcard {
			out = append(out, conj)
		}
	}
	return out
}

var identifierCleaner = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Identifier folds an arbitrary metadata code into a safe source
// identifier fragment.
func Identifier(code string) string {
	id := identifierCleaner.ReplaceAllString(code, "_")
	id = strings.Trim(id, "_")
	if id == "" {
		id = "x"
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "m_" + id
	}
	return id
}

// ClassName returns the class name for a combination code.
func ClassName(combinationCode string) string {
	return "Cell_" + Identifier(combinationCode)
}

// StubName returns the member-predicate stub identifier for a member code.
func StubName(memberCode string) string {
	return "is_" + strings.ToLower(Identifier(memberCode))
}
