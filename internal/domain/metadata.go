package domain

// Variable data types. Variables of an open (facetted) type are not backed
// by an enumerated member domain and skip member matching entirely.
const (
	VarTypeEnumerated = "ENUMERATED"
	VarTypeString     = "STRING"
	VarTypeDate       = "DATE"
	VarTypeInteger    = "INTEGER"
	VarTypeBoolean    = "BOOLEAN"
	VarTypeFloat      = "FLOAT"
)

// Domain is an enumerated (or open) value domain owned by the regulatory
// classification schema. Enumerated domains own members and hierarchies.
type Domain struct {
	ID           string
	Code         string
	Name         string
	IsEnumerated bool
}

// Member is one coded value of a Domain. A member is a hierarchy node iff
// it appears as a parent in at least one hierarchy edge of its domain;
// otherwise it is a directly reportable leaf.
type Member struct {
	ID       string
	DomainID string
	Code     string
	Name     string
}

// Hierarchy is one rollup tree over the members of a Domain. A domain may
// own several hierarchies over the same members.
type Hierarchy struct {
	ID       string
	DomainID string
	Code     string
	Name     string
}

// HierarchyNode is one parent->child edge of a Hierarchy.
type HierarchyNode struct {
	HierarchyID    string
	ParentMemberID string
	ChildMemberID  string
	Level          int
	Order          int
}

// Variable is a typed column reference bound to a Domain.
type Variable struct {
	ID       string
	DomainID string
	Code     string
	Name     string
	Type     string
}

// IsFacetted reports whether the variable has an open data type and
// therefore never takes part in member matching.
func (v Variable) IsFacetted() bool {
	switch v.Type {
	case VarTypeString, VarTypeDate, VarTypeInteger, VarTypeBoolean, VarTypeFloat:
		return true
	}
	return false
}

// Subdomain is an explicit member subset of a Domain, used to restrict a
// cube column to part of the domain.
type Subdomain struct {
	ID       string
	DomainID string
	Code     string
	Name     string
}

// SubdomainEnumeration lists one member as belonging to a Subdomain.
type SubdomainEnumeration struct {
	SubdomainID string
	MemberID    string
}

// Cube types. Input cubes carry source records; report cubes are the
// output datasets addressed by report templates.
const (
	CubeTypeInput  = "INPUT"
	CubeTypeReport = "REPORT"
)

// Cube is a named dataset (input layer or report layer).
type Cube struct {
	ID            string
	Code          string
	Name          string
	CubeType      string
	FrameworkCode string
}

// CubeStructureItem is one typed column of a Cube, optionally restricted
// to a Subdomain of its variable's domain.
type CubeStructureItem struct {
	ID          string
	CubeID      string
	VariableID  string
	SubdomainID string // empty when the column spans the whole domain
	Order       int
}

// Combination is one addressable report cell: fixed member selectors plus
// an optional metric variable summed over the matching records.
type Combination struct {
	ID               string
	Code             string
	TemplateCode     string
	MetricVariableID string // empty when the cell counts rows
}

// CombinationItem is one (variable, member) selector of a Combination,
// carrying the hierarchy under which the member is to be expanded.
type CombinationItem struct {
	CombinationID string
	VariableID    string
	MemberID      string
	HierarchyID   string
	Order         int
}
