package compiler

import (
	"fmt"
	"strings"

	"regmap/internal/domain"
)

// ProductClassifier maps a cell's abstract product-type selector onto the
// concrete product-table aliases its generated initialiser scans. The
// code->slice table is static configuration.
type ProductClassifier struct {
	snap           *Snapshot
	diags          *domain.Diagnostics
	productVarCode string
	slices         map[string]string // product member code -> slice name
}

// NewProductClassifier creates a classifier over the static slice table.
func NewProductClassifier(snap *Snapshot, diags *domain.Diagnostics, productVarCode string, slices map[string]string) *ProductClassifier {
	return &ProductClassifier{
		snap:           snap,
		diags:          diags,
		productVarCode: productVarCode,
		slices:         slices,
	}
}

// Classify returns the product-table aliases for a combination, in
// selector order. A cell with no resolvable product type yields an empty
// list and an UnresolvedProductType diagnostic; the generator then emits
// an always-failing initialiser stub instead of aborting.
func (c *ProductClassifier) Classify(combo domain.Combination) []string {
	var aliases []string
	seen := map[string]bool{}

	for _, item := range c.snap.ItemsByCombination[combo.ID] {
		variable := c.snap.Variables[item.VariableID]
		if variable.Code != c.productVarCode {
			continue
		}
		member := c.snap.Members[item.MemberID]
		slice, ok := c.slices[member.Code]
		if !ok {
			continue
		}
		alias := SliceAlias(slice)
		if seen[alias] {
			continue
		}
		seen[alias] = true
		aliases = append(aliases, alias)
	}

	if len(aliases) == 0 {
		c.diags.Add(domain.DiagUnresolvedProductType, combo.Code,
			"no product table mapping for combination")
	}
	return aliases
}

// SliceAlias formats a slice name into a table-scoped alias identifier.
func SliceAlias(slice string) string {
	return fmt.Sprintf("%s_table", strings.ToLower(slice))
}
