package compiler

import "regmap/internal/domain"

// Resolution is the deduplicated join graph produced for one report cube.
type Resolution struct {
	Links     []domain.CubeLink
	ItemLinks []domain.CubeStructureItemLink
}

// Resolver builds the join graph linking each report column to the input
// columns that can populate it.
type Resolver struct {
	snap  *Snapshot
	exp   *Expander
	index *CombinationIndex
	diags *domain.Diagnostics
}

// NewResolver creates a resolver over a run's snapshot and caches.
func NewResolver(snap *Snapshot, exp *Expander, index *CombinationIndex, diags *domain.Diagnostics) *Resolver {
	return &Resolver{snap: snap, exp: exp, index: index, diags: diags}
}

// Resolve links the report cube's columns to matching columns of the
// given input cubes for one template.
//
// A report column takes part only when some cell of the template selects
// its variable, or when the variable is facetted (open-typed columns are
// always eligible). The members those cells select are expanded to leaves
// against every hierarchy of the variable's domain and unioned. An input
// column matches when its subdomain enumeration intersects the unioned
// member set, or when its variable name equals the report variable's name
// exactly. Links dedup on (template, input cube, code); item links on
// (link, report variable, input variable). Edges come out in input-cube
// iteration order.
func (r *Resolver) Resolve(template string, reportCube domain.Cube, inputCubes []domain.Cube) Resolution {
	var res Resolution
	linkIdx := map[string]int{}   // CubeLink.Key() -> index into res.Links
	itemSeen := map[string]bool{} // CubeStructureItemLink.Key()

	combos := r.index.Combinations(template)

	for _, reportItem := range r.snap.ItemsByCube[reportCube.ID] {
		reportVar := r.snap.Variables[reportItem.VariableID]

		// Members selected for this variable across the template's cells,
		// first-seen order.
		var selected []string
		selectedSeen := map[string]bool{}
		for _, combo := range combos {
			memberID, ok := r.index.Selector(template, combo.ID, reportVar.ID)
			if !ok || selectedSeen[memberID] {
				continue
			}
			selectedSeen[memberID] = true
			selected = append(selected, memberID)
		}

		if len(selected) == 0 && !reportVar.IsFacetted() {
			// No cell of the template references this column.
			continue
		}

		memberSet := r.expandUnion(selected)

		for _, inputCube := range inputCubes {
			matched := false
			for _, inputItem := range r.snap.ItemsByCube[inputCube.ID] {
				inputVar := r.snap.Variables[inputItem.VariableID]
				if !r.matches(inputItem, inputVar, reportVar, memberSet) {
					continue
				}
				matched = true

				link := domain.CubeLink{
					ID:             domain.NewID(),
					Code:           reportCube.Code,
					ReportTemplate: template,
					ForeignCubeID:  inputCube.ID,
					PrimaryCubeID:  reportCube.ID,
				}
				idx, ok := linkIdx[link.Key()]
				if !ok {
					idx = len(res.Links)
					linkIdx[link.Key()] = idx
					res.Links = append(res.Links, link)
				}

				itemLink := domain.CubeStructureItemLink{
					ID:                domain.NewID(),
					CubeLinkID:        res.Links[idx].ID,
					PrimaryItemID:     reportItem.ID,
					ForeignItemID:     inputItem.ID,
					PrimaryVariableID: reportVar.ID,
					ForeignVariableID: inputVar.ID,
				}
				if itemSeen[itemLink.Key()] {
					continue
				}
				itemSeen[itemLink.Key()] = true
				res.ItemLinks = append(res.ItemLinks, itemLink)
			}
			if !matched {
				r.diags.Add(domain.DiagNoColumnMatch, reportVar.Code,
					"no column of input cube %q matches report column %q.%q",
					inputCube.Code, reportCube.Code, reportVar.Code)
			}
		}
	}

	return res
}

// expandUnion unions the leaf expansions of the selected members against
// every hierarchy their domain owns.
func (r *Resolver) expandUnion(memberIDs []string) map[string]bool {
	set := map[string]bool{}
	for _, memberID := range memberIDs {
		member := r.snap.Members[memberID]
		hierarchies := r.snap.HierarchiesByDomain[member.DomainID]
		if len(hierarchies) == 0 {
			set[memberID] = true
			continue
		}
		for _, h := range hierarchies {
			for _, leaf := range r.exp.ExpandLeaves(memberID, h.ID) {
				set[leaf.ID] = true
			}
		}
	}
	return set
}

// matches decides whether an input column is a candidate for a report
// column: subdomain-enumeration overlap with the unioned member set, or
// exact variable-name equality as the facetted fallback.
func (r *Resolver) matches(inputItem domain.CubeStructureItem, inputVar, reportVar domain.Variable, memberSet map[string]bool) bool {
	if inputItem.SubdomainID != "" {
		for memberID := range r.snap.SubdomainMembers[inputItem.SubdomainID] {
			if memberSet[memberID] {
				return true
			}
		}
	}
	return inputVar.Name == reportVar.Name
}
