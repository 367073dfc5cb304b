package compiler

import "regmap/internal/domain"

type expandKey struct {
	memberID    string
	hierarchyID string
}

// Expander precomputes hierarchy-node classification and expands members
// to their leaf sets. Both the classification set and the expansion memo
// belong to exactly one run; a new snapshot gets a new Expander.
type Expander struct {
	snap     *Snapshot
	children map[expandKey][]string // (parent, hierarchy) -> child member IDs, edge order
	nodes    map[string]bool        // member IDs that parent at least one edge
	memo     map[expandKey][]domain.Member
	diags    *domain.Diagnostics
}

// NewExpander builds the child index and node set from all hierarchy
// edges of the snapshot.
func NewExpander(snap *Snapshot, diags *domain.Diagnostics) *Expander {
	e := &Expander{
		snap:     snap,
		children: map[expandKey][]string{},
		nodes:    map[string]bool{},
		memo:     map[expandKey][]domain.Member{},
		diags:    diags,
	}
	for _, edge := range snap.Nodes {
		key := expandKey{memberID: edge.ParentMemberID, hierarchyID: edge.HierarchyID}
		e.children[key] = append(e.children[key], edge.ChildMemberID)
		e.nodes[edge.ParentMemberID] = true
	}
	return e
}

// IsNode reports whether a member aggregates children in any hierarchy of
// its domain.
func (e *Expander) IsNode(memberID string) bool {
	return e.nodes[memberID]
}

// ExpandLeaves returns the ordered, duplicate-free leaf members a member
// rolls up under the given hierarchy. A non-node member expands to itself.
// A node with no recorded leaves under the hierarchy yields an empty set
// and a MissingHierarchyLeaf diagnostic; a cyclic edge set yields a
// HierarchyCycle diagnostic. The run continues either way.
func (e *Expander) ExpandLeaves(memberID, hierarchyID string) []domain.Member {
	key := expandKey{memberID: memberID, hierarchyID: hierarchyID}
	if leaves, ok := e.memo[key]; ok {
		return leaves
	}

	seen := map[string]bool{}
	visiting := map[string]bool{}
	leaves := e.expand(memberID, hierarchyID, seen, visiting)
	if len(leaves) == 0 {
		member := e.snap.Members[memberID]
		hierarchy := e.snap.Hierarchies[hierarchyID]
		e.diags.Add(domain.DiagMissingHierarchyLeaf, member.Code,
			"member expands to zero leaves under hierarchy %q", hierarchy.Code)
	}

	e.memo[key] = leaves
	return leaves
}

func (e *Expander) expand(memberID, hierarchyID string, seen, visiting map[string]bool) []domain.Member {
	if !e.nodes[memberID] {
		if seen[memberID] {
			return nil
		}
		seen[memberID] = true
		return []domain.Member{e.snap.Members[memberID]}
	}

	// visiting holds the current ancestor chain; a node reappearing on its
	// own path means the edge set is cyclic.
	if visiting[memberID] {
		member := e.snap.Members[memberID]
		hierarchy := e.snap.Hierarchies[hierarchyID]
		e.diags.Add(domain.DiagHierarchyCycle, member.Code,
			"member is part of an edge cycle under hierarchy %q", hierarchy.Code)
		return nil
	}
	visiting[memberID] = true

	var leaves []domain.Member
	for _, childID := range e.children[expandKey{memberID: memberID, hierarchyID: hierarchyID}] {
		leaves = append(leaves, e.expand(childID, hierarchyID, seen, visiting)...)
	}
	delete(visiting, memberID)
	return leaves
}
