package compiler

import "regmap/internal/domain"

// CombinationIndex indexes report cells by ID and by category (report
// template), and each cell's variable->member selectors per category.
// Pure and O(n); rebuilt in full every run.
type CombinationIndex struct {
	items      map[string][]domain.CombinationItem
	byCategory map[string][]domain.Combination
	selectors  map[string]map[string]map[string]string // category -> combination -> variable -> member
}

// BuildCombinationIndex indexes all combinations of the snapshot.
func BuildCombinationIndex(snap *Snapshot) *CombinationIndex {
	ix := &CombinationIndex{
		items:      map[string][]domain.CombinationItem{},
		byCategory: map[string][]domain.Combination{},
		selectors:  map[string]map[string]map[string]string{},
	}
	for _, combo := range snap.Combinations {
		ix.items[combo.ID] = snap.ItemsByCombination[combo.ID]
		ix.byCategory[combo.TemplateCode] = append(ix.byCategory[combo.TemplateCode], combo)

		perCategory := ix.selectors[combo.TemplateCode]
		if perCategory == nil {
			perCategory = map[string]map[string]string{}
			ix.selectors[combo.TemplateCode] = perCategory
		}
		sel := map[string]string{}
		for _, item := range snap.ItemsByCombination[combo.ID] {
			sel[item.VariableID] = item.MemberID
		}
		perCategory[combo.ID] = sel
	}
	return ix
}

// Items returns a cell's selectors in item order.
func (ix *CombinationIndex) Items(combinationID string) []domain.CombinationItem {
	return ix.items[combinationID]
}

// Combinations returns a category's cells in code order.
func (ix *CombinationIndex) Combinations(category string) []domain.Combination {
	return ix.byCategory[category]
}

// Selector returns the member a cell selects for a variable, if any.
func (ix *CombinationIndex) Selector(category, combinationID, variableID string) (string, bool) {
	perCategory, ok := ix.selectors[category]
	if !ok {
		return "", false
	}
	sel, ok := perCategory[combinationID]
	if !ok {
		return "", false
	}
	memberID, ok := sel[variableID]
	return memberID, ok
}
