package compiler

import "regmap/internal/domain"

// Run bundles the per-run state: the metadata snapshot, the caches built
// over it, and the diagnostics list. A Run is constructed per invocation
// and discarded with its snapshot; reusing caches across snapshots is a
// correctness bug, so there is deliberately no reset method.
type Run struct {
	Snap     *Snapshot
	Diags    *domain.Diagnostics
	Expander *Expander
	Index    *CombinationIndex
	Resolver *Resolver
	Products *ProductClassifier
}

// NewRun builds all per-run caches from a freshly loaded snapshot.
func NewRun(snap *Snapshot, productVarCode string, productSlices map[string]string) *Run {
	diags := &domain.Diagnostics{}
	exp := NewExpander(snap, diags)
	index := BuildCombinationIndex(snap)

	return &Run{
		Snap:     snap,
		Diags:    diags,
		Expander: exp,
		Index:    index,
		Resolver: NewResolver(snap, exp, index, diags),
		Products: NewProductClassifier(snap, diags, productVarCode, productSlices),
	}
}
