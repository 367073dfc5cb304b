package filter

import (
	"regmap/internal/compiler"
	"regmap/internal/domain"
)

// Builder turns a template's combinations into a FileModel, expanding
// selector members through the run's hierarchy expander.
type Builder struct {
	run          *compiler.Run
	wildcardCode string
}

// NewBuilder creates a builder over a run.
func NewBuilder(run *compiler.Run, wildcardCode string) *Builder {
	return &Builder{run: run, wildcardCode: wildcardCode}
}

// BuildFile models the generated source file for one report template.
func (b *Builder) BuildFile(template string) FileModel {
	file := FileModel{Template: template}
	stubSeen := map[string]bool{}

	for _, combo := range b.run.Index.Combinations(template) {
		class := b.BuildClass(combo)
		file.Classes = append(file.Classes, class)

		for _, conj := range class.Conjuncts {
			for _, code := range conj.Codes {
				stub := StubName(code)
				if stubSeen[stub] {
					continue
				}
				stubSeen[stub] = true
				file.Stubs = append(file.Stubs, stub)
			}
		}
	}

	return file
}

// BuildClass models one report-cell class: a conjunct per selector, the
// metric variable, and the product tables its initialiser scans.
func (b *Builder) BuildClass(combo domain.Combination) ClassModel {
	class := ClassModel{
		Name:            ClassName(combo.Code),
		CombinationCode: combo.Code,
		Products:        b.run.Products.Classify(combo),
	}
	if combo.MetricVariableID != "" {
		class.MetricVariable = b.run.Snap.Variables[combo.MetricVariableID].Code
	}

	for _, item := range b.run.Index.Items(combo.ID) {
		variable := b.run.Snap.Variables[item.VariableID]
		member := b.run.Snap.Members[item.MemberID]

		if member.Code == b.wildcardCode {
			class.Conjuncts = append(class.Conjuncts, ConjunctModel{
				Variable: variable.Code,
				Wildcard: true,
			})
			continue
		}

		codes := b.expandCodes(item)
		if len(codes) == 0 {
			// An empty conjunct can never hold, so the whole predicate
			// never matches.
			class.NeverMatch = true
			b.run.Diags.Add(domain.DiagEmptyFilterPredicate, combo.Code,
				"selector on variable %q expanded to zero member codes", variable.Code)
		}
		class.Conjuncts = append(class.Conjuncts, ConjunctModel{
			Variable: variable.Code,
			Codes:    codes,
		})
	}

	return class
}

// expandCodes expands a selector's member to leaf codes under its
// applicable hierarchy. A selector without a hierarchy falls back to the
// member itself, or to the union over the domain's hierarchies when the
// member is an aggregating node.
func (b *Builder) expandCodes(item domain.CombinationItem) []string {
	if item.HierarchyID != "" {
		return memberCodes(b.run.Expander.ExpandLeaves(item.MemberID, item.HierarchyID))
	}

	member := b.run.Snap.Members[item.MemberID]
	if !b.run.Expander.IsNode(item.MemberID) {
		return []string{member.Code}
	}

	var codes []string
	seen := map[string]bool{}
	for _, h := range b.run.Snap.HierarchiesByDomain[member.DomainID] {
		for _, leaf := range b.run.Expander.ExpandLeaves(item.MemberID, h.ID) {
			if seen[leaf.Code] {
				continue
			}
			seen[leaf.Code] = true
			codes = append(codes, leaf.Code)
		}
	}
	return codes
}

func memberCodes(members []domain.Member) []string {
	codes := make([]string, len(members))
	for i, m := range members {
		codes[i] = m.Code
	}
	return codes
}
