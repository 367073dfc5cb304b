package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StaticTables are the two static configuration tables of the compiler:
// the in-scope report templates and the product-type->slice-name map,
// plus the sentinel codes both generators depend on.
type StaticTables struct {
	// Templates lists the report templates in scope for generation.
	Templates []TemplateConfig `yaml:"templates"`

	// ProductTypeVariable is the code of the variable whose selector
	// carries a cell's abstract product type.
	ProductTypeVariable string `yaml:"product_type_variable"`

	// ProductSlices maps a product-type member code to the slice name of
	// the concrete input dataset carrying that product.
	ProductSlices map[string]string `yaml:"product_slices"`

	// WildcardMemberCode is the "no restriction" sentinel: a selector on
	// this member contributes no filter conjunct.
	WildcardMemberCode string `yaml:"wildcard_member_code"`
}

// TemplateConfig identifies one in-scope report template.
type TemplateConfig struct {
	Code          string `yaml:"code"`
	FrameworkCode string `yaml:"framework"`
}

// DefaultStaticTables returns the built-in tables used when no static
// tables file is configured.
func DefaultStaticTables() StaticTables {
	return StaticTables{
		ProductTypeVariable: "TYP_INSTRMNT",
		WildcardMemberCode:  "0",
		ProductSlices: map[string]string{
			"1000": "DEPOSITS",
			"1100": "LOANS",
			"1200": "DEBT_SECURITIES",
			"1300": "EQUITY_INSTRUMENTS",
			"1400": "DERIVATIVES",
		},
	}
}

// LoadStaticTables reads a static tables YAML file.
func LoadStaticTables(path string) (StaticTables, error) {
	var tables StaticTables
	raw, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return tables, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &tables); err != nil {
		return tables, fmt.Errorf("parse %s: %w", path, err)
	}
	return tables, nil
}

// Merge overlays non-empty fields of other onto the receiver and returns
// the result. Slice maps merge key-wise so a file can extend the built-in
// table without restating it.
func (t StaticTables) Merge(other StaticTables) StaticTables {
	out := t
	if len(other.Templates) > 0 {
		out.Templates = other.Templates
	}
	if other.ProductTypeVariable != "" {
		out.ProductTypeVariable = other.ProductTypeVariable
	}
	if other.WildcardMemberCode != "" {
		out.WildcardMemberCode = other.WildcardMemberCode
	}
	if len(other.ProductSlices) > 0 {
		merged := make(map[string]string, len(t.ProductSlices)+len(other.ProductSlices))
		for code, slice := range t.ProductSlices {
			merged[code] = slice
		}
		for code, slice := range other.ProductSlices {
			merged[code] = slice
		}
		out.ProductSlices = merged
	}
	return out
}

// Validate checks the tables are internally consistent.
func (t StaticTables) Validate() error {
	if t.ProductTypeVariable == "" {
		return fmt.Errorf("product_type_variable must be set")
	}
	if t.WildcardMemberCode == "" {
		return fmt.Errorf("wildcard_member_code must be set")
	}
	seen := map[string]bool{}
	for _, tmpl := range t.Templates {
		if tmpl.Code == "" {
			return fmt.Errorf("template with empty code")
		}
		if seen[tmpl.Code] {
			return fmt.Errorf("duplicate template %q", tmpl.Code)
		}
		seen[tmpl.Code] = true
	}
	return nil
}

// Template returns the template config for a code, if in scope.
func (t StaticTables) Template(code string) (TemplateConfig, bool) {
	for _, tmpl := range t.Templates {
		if tmpl.Code == code {
			return tmpl, true
		}
	}
	return TemplateConfig{}, false
}
