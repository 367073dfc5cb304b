// Package compiler turns the classification schema and the report-cell
// catalogue into the join graph and the per-cell filter models. It is a
// single-pass, in-memory batch core: all metadata is loaded once into a
// snapshot, and every cache lives on a per-run context.
package compiler

import (
	"context"
	"sort"

	"regmap/internal/domain"
)

// Snapshot is the full metadata catalogue loaded for one run. Slices keep
// the store's identifier-sorted order; maps exist for keyed access only
// and are never iterated directly.
type Snapshot struct {
	Domains     map[string]domain.Domain
	Members     map[string]domain.Member
	Hierarchies map[string]domain.Hierarchy
	Variables   map[string]domain.Variable
	Subdomains  map[string]domain.Subdomain
	Cubes       map[string]domain.Cube

	// HierarchiesByDomain lists a domain's hierarchies sorted by code.
	HierarchiesByDomain map[string][]domain.Hierarchy
	// SubdomainMembers is the enumeration of each subdomain as a member-ID set.
	SubdomainMembers map[string]map[string]bool
	// ItemsByCube lists a cube's columns in column order.
	ItemsByCube map[string][]domain.CubeStructureItem
	// ItemsByCombination lists a cell's selectors in item order.
	ItemsByCombination map[string][]domain.CombinationItem

	Nodes        []domain.HierarchyNode
	Combinations []domain.Combination // sorted by code
	CubesSorted  []domain.Cube        // sorted by code
}

// LoadSnapshot reads the whole catalogue from the store. Any read failure
// is fatal for the run.
func LoadSnapshot(ctx context.Context, store domain.MetadataReader) (*Snapshot, error) {
	snap := &Snapshot{
		Domains:             map[string]domain.Domain{},
		Members:             map[string]domain.Member{},
		Hierarchies:         map[string]domain.Hierarchy{},
		Variables:           map[string]domain.Variable{},
		Subdomains:          map[string]domain.Subdomain{},
		Cubes:               map[string]domain.Cube{},
		HierarchiesByDomain: map[string][]domain.Hierarchy{},
		SubdomainMembers:    map[string]map[string]bool{},
		ItemsByCube:         map[string][]domain.CubeStructureItem{},
		ItemsByCombination:  map[string][]domain.CombinationItem{},
	}

	domains, err := store.Domains(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range domains {
		snap.Domains[d.ID] = d
	}

	members, err := store.Members(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		snap.Members[m.ID] = m
	}

	hierarchies, err := store.Hierarchies(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range hierarchies {
		snap.Hierarchies[h.ID] = h
		snap.HierarchiesByDomain[h.DomainID] = append(snap.HierarchiesByDomain[h.DomainID], h)
	}
	for domainID := range snap.HierarchiesByDomain {
		hs := snap.HierarchiesByDomain[domainID]
		sort.Slice(hs, func(i, j int) bool { return hs[i].Code < hs[j].Code })
	}

	snap.Nodes, err = store.HierarchyNodes(ctx)
	if err != nil {
		return nil, err
	}

	variables, err := store.Variables(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range variables {
		snap.Variables[v.ID] = v
	}

	subdomains, err := store.Subdomains(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range subdomains {
		snap.Subdomains[s.ID] = s
	}

	enums, err := store.SubdomainEnumerations(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range enums {
		set := snap.SubdomainMembers[e.SubdomainID]
		if set == nil {
			set = map[string]bool{}
			snap.SubdomainMembers[e.SubdomainID] = set
		}
		set[e.MemberID] = true
	}

	cubes, err := store.Cubes(ctx)
	if err != nil {
		return nil, err
	}
	snap.CubesSorted = cubes
	for _, c := range cubes {
		snap.Cubes[c.ID] = c
	}

	items, err := store.CubeStructureItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		snap.ItemsByCube[item.CubeID] = append(snap.ItemsByCube[item.CubeID], item)
	}

	snap.Combinations, err = store.Combinations(ctx)
	if err != nil {
		return nil, err
	}

	comboItems, err := store.CombinationItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range comboItems {
		snap.ItemsByCombination[item.CombinationID] = append(snap.ItemsByCombination[item.CombinationID], item)
	}

	return snap, nil
}

// ReportCubes returns the report-layer cubes of a template's framework in
// code order.
func (s *Snapshot) ReportCubes(frameworkCode string) []domain.Cube {
	var out []domain.Cube
	for _, c := range s.CubesSorted {
		if c.CubeType == domain.CubeTypeReport && c.FrameworkCode == frameworkCode {
			out = append(out, c)
		}
	}
	return out
}

// InputCubes returns the input-layer cubes of a framework in code order.
func (s *Snapshot) InputCubes(frameworkCode string) []domain.Cube {
	var out []domain.Cube
	for _, c := range s.CubesSorted {
		if c.CubeType == domain.CubeTypeInput && c.FrameworkCode == frameworkCode {
			out = append(out, c)
		}
	}
	return out
}
