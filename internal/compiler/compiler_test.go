package compiler

import (
	"sort"

	"regmap/internal/domain"
)

// newTestSnapshot returns an empty snapshot with all indexes initialised.
func newTestSnapshot() *Snapshot {
	return &Snapshot{
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
}

func (s *Snapshot) addDomain(id, code string) {
	s.Domains[id] = domain.Domain{ID: id, Code: code, IsEnumerated: true}
}

func (s *Snapshot) addMember(id, domainID, code string) {
	s.Members[id] = domain.Member{ID: id, DomainID: domainID, Code: code}
}

func (s *Snapshot) addHierarchy(id, domainID, code string) {
	h := domain.Hierarchy{ID: id, DomainID: domainID, Code: code}
	s.Hierarchies[id] = h
	s.HierarchiesByDomain[domainID] = append(s.HierarchiesByDomain[domainID], h)
	hs := s.HierarchiesByDomain[domainID]
	sort.Slice(hs, func(i, j int) bool { return hs[i].Code < hs[j].Code })
}

func (s *Snapshot) addEdge(hierarchyID, parentID, childID string) {
	s.Nodes = append(s.Nodes, domain.HierarchyNode{
		HierarchyID:    hierarchyID,
		ParentMemberID: parentID,
		ChildMemberID:  childID,
		Order:          len(s.Nodes),
	})
}

func (s *Snapshot) addVariable(id, domainID, code, varType string) {
	s.Variables[id] = domain.Variable{ID: id, DomainID: domainID, Code: code, Name: code, Type: varType}
}

func (s *Snapshot) addSubdomain(id, domainID, code string, memberIDs ...string) {
	s.Subdomains[id] = domain.Subdomain{ID: id, DomainID: domainID, Code: code}
	set := map[string]bool{}
	for _, m := range memberIDs {
		set[m] = true
	}
	s.SubdomainMembers[id] = set
}

func (s *Snapshot) addCube(id, code, cubeType, framework string) {
	c := domain.Cube{ID: id, Code: code, CubeType: cubeType, FrameworkCode: framework}
	s.Cubes[id] = c
	s.CubesSorted = append(s.CubesSorted, c)
	sort.Slice(s.CubesSorted, func(i, j int) bool { return s.CubesSorted[i].Code < s.CubesSorted[j].Code })
}

func (s *Snapshot) addCubeItem(id, cubeID, variableID, subdomainID string) {
	s.ItemsByCube[cubeID] = append(s.ItemsByCube[cubeID], domain.CubeStructureItem{
		ID:          id,
		CubeID:      cubeID,
		VariableID:  variableID,
		SubdomainID: subdomainID,
		Order:       len(s.ItemsByCube[cubeID]),
	})
}

func (s *Snapshot) addCombination(id, code, template, metricVariableID string) {
	s.Combinations = append(s.Combinations, domain.Combination{
		ID:               id,
		Code:             code,
		TemplateCode:     template,
		MetricVariableID: metricVariableID,
	})
	sort.Slice(s.Combinations, func(i, j int) bool { return s.Combinations[i].Code < s.Combinations[j].Code })
}

func (s *Snapshot) addCombinationItem(combinationID, variableID, memberID, hierarchyID string) {
	s.ItemsByCombination[combinationID] = append(s.ItemsByCombination[combinationID], domain.CombinationItem{
		CombinationID: combinationID,
		VariableID:    variableID,
		MemberID:      memberID,
		HierarchyID:   hierarchyID,
		Order:         len(s.ItemsByCombination[combinationID]),
	})
}

// scenarioSnapshot builds the canonical fixture: domain D1 with hierarchy
// H1 and edges P->{A,B}, variable VAR1 over D1, open metric variable VAR2,
// report cube RC1 and input cube IC1 in framework FW, and cell C100 of
// template T1 selecting (VAR1, P) under H1 with metric VAR2.
func scenarioSnapshot() *Snapshot {
	snap := newTestSnapshot()
	snap.addDomain("d1", "D1")
	snap.addMember("p", "d1", "P")
	snap.addMember("a", "d1", "A")
	snap.addMember("b", "d1", "B")
	snap.addHierarchy("h1", "d1", "H1")
	snap.addEdge("h1", "p", "a")
	snap.addEdge("h1", "p", "b")

	snap.addVariable("var1", "d1", "VAR1", domain.VarTypeEnumerated)
	snap.addVariable("var2", "", "VAR2", domain.VarTypeFloat)

	snap.addCube("rc1", "RC1", domain.CubeTypeReport, "FW")
	snap.addCube("ic1", "IC1", domain.CubeTypeInput, "FW")
	snap.addCubeItem("rc1-var1", "rc1", "var1", "")
	snap.addCubeItem("rc1-var2", "rc1", "var2", "")
	snap.addSubdomain("sd1", "d1", "SD1", "a")
	snap.addCubeItem("ic1-var1", "ic1", "var1", "sd1")
	snap.addCubeItem("ic1-var2", "ic1", "var2", "")

	snap.addCombination("c100", "C100", "T1", "var2")
	snap.addCombinationItem("c100", "var1", "p", "h1")

	return snap
}
