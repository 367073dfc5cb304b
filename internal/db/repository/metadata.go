package repository

import (
	"context"
	"database/sql"

	"regmap/internal/domain"
)

// MetadataRepo implements domain.MetadataReader against the SQLite
// metastore. Every query carries an ORDER BY over a stable identifier so
// repeated runs iterate the catalogue in the same order.
type MetadataRepo struct {
	db *sql.DB
}

// NewMetadataRepo creates a new MetadataRepo.
func NewMetadataRepo(db *sql.DB) *MetadataRepo {
	return &MetadataRepo{db: db}
}

// Domains returns all domains ordered by code.
func (r *MetadataRepo) Domains(ctx context.Context) ([]domain.Domain, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, name, is_enumerated FROM domains ORDER BY code`)
	if err != nil {
		return nil, mapDBError(err, "list domains")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Domain
	for rows.Next() {
		var d domain.Domain
		var enumerated int64
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &enumerated); err != nil {
			return nil, mapDBError(err, "scan domain")
		}
		d.IsEnumerated = enumerated != 0
		out = append(out, d)
	}
	return out, mapDBError(rows.Err(), "list domains")
}

// Members returns all members ordered by (domain, code).
func (r *MetadataRepo) Members(ctx context.Context) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, domain_id, code, name FROM members ORDER BY domain_id, code`)
	if err != nil {
		return nil, mapDBError(err, "list members")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.DomainID, &m.Code, &m.Name); err != nil {
			return nil, mapDBError(err, "scan member")
		}
		out = append(out, m)
	}
	return out, mapDBError(rows.Err(), "list members")
}

// Hierarchies returns all hierarchies ordered by (domain, code).
func (r *MetadataRepo) Hierarchies(ctx context.Context) ([]domain.Hierarchy, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, domain_id, code, name FROM hierarchies ORDER BY domain_id, code`)
	if err != nil {
		return nil, mapDBError(err, "list hierarchies")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Hierarchy
	for rows.Next() {
		var h domain.Hierarchy
		if err := rows.Scan(&h.ID, &h.DomainID, &h.Code, &h.Name); err != nil {
			return nil, mapDBError(err, "scan hierarchy")
		}
		out = append(out, h)
	}
	return out, mapDBError(rows.Err(), "list hierarchies")
}

// HierarchyNodes returns all hierarchy edges in recorded node order.
func (r *MetadataRepo) HierarchyNodes(ctx context.Context) ([]domain.HierarchyNode, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT hierarchy_id, parent_member_id, child_member_id, level, node_order
		 FROM hierarchy_nodes ORDER BY hierarchy_id, parent_member_id, node_order, child_member_id`)
	if err != nil {
		return nil, mapDBError(err, "list hierarchy nodes")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.HierarchyNode
	for rows.Next() {
		var n domain.HierarchyNode
		if err := rows.Scan(&n.HierarchyID, &n.ParentMemberID, &n.ChildMemberID, &n.Level, &n.Order); err != nil {
			return nil, mapDBError(err, "scan hierarchy node")
		}
		out = append(out, n)
	}
	return out, mapDBError(rows.Err(), "list hierarchy nodes")
}

// Variables returns all variables ordered by code.
func (r *MetadataRepo) Variables(ctx context.Context) ([]domain.Variable, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, domain_id, code, name, var_type FROM variables ORDER BY code`)
	if err != nil {
		return nil, mapDBError(err, "list variables")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Variable
	for rows.Next() {
		var v domain.Variable
		if err := rows.Scan(&v.ID, &v.DomainID, &v.Code, &v.Name, &v.Type); err != nil {
			return nil, mapDBError(err, "scan variable")
		}
		out = append(out, v)
	}
	return out, mapDBError(rows.Err(), "list variables")
}

// Subdomains returns all subdomains ordered by (domain, code).
func (r *MetadataRepo) Subdomains(ctx context.Context) ([]domain.Subdomain, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, domain_id, code, name FROM subdomains ORDER BY domain_id, code`)
	if err != nil {
		return nil, mapDBError(err, "list subdomains")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Subdomain
	for rows.Next() {
		var s domain.Subdomain
		if err := rows.Scan(&s.ID, &s.DomainID, &s.Code, &s.Name); err != nil {
			return nil, mapDBError(err, "scan subdomain")
		}
		out = append(out, s)
	}
	return out, mapDBError(rows.Err(), "list subdomains")
}

// SubdomainEnumerations returns all subdomain member entries.
func (r *MetadataRepo) SubdomainEnumerations(ctx context.Context) ([]domain.SubdomainEnumeration, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT subdomain_id, member_id FROM subdomain_enumerations ORDER BY subdomain_id, member_id`)
	if err != nil {
		return nil, mapDBError(err, "list subdomain enumerations")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.SubdomainEnumeration
	for rows.Next() {
		var e domain.SubdomainEnumeration
		if err := rows.Scan(&e.SubdomainID, &e.MemberID); err != nil {
			return nil, mapDBError(err, "scan subdomain enumeration")
		}
		out = append(out, e)
	}
	return out, mapDBError(rows.Err(), "list subdomain enumerations")
}

// Cubes returns all cubes ordered by code.
func (r *MetadataRepo) Cubes(ctx context.Context) ([]domain.Cube, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, name, cube_type, framework_code FROM cubes ORDER BY code`)
	if err != nil {
		return nil, mapDBError(err, "list cubes")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Cube
	for rows.Next() {
		var c domain.Cube
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.CubeType, &c.FrameworkCode); err != nil {
			return nil, mapDBError(err, "scan cube")
		}
		out = append(out, c)
	}
	return out, mapDBError(rows.Err(), "list cubes")
}

// CubeStructureItems returns all cube columns in cube and column order.
func (r *MetadataRepo) CubeStructureItems(ctx context.Context) ([]domain.CubeStructureItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, cube_id, variable_id, subdomain_id, item_order
		 FROM cube_structure_items ORDER BY cube_id, item_order, id`)
	if err != nil {
		return nil, mapDBError(err, "list cube structure items")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.CubeStructureItem
	for rows.Next() {
		var item domain.CubeStructureItem
		var subdomainID sql.NullString
		if err := rows.Scan(&item.ID, &item.CubeID, &item.VariableID, &subdomainID, &item.Order); err != nil {
			return nil, mapDBError(err, "scan cube structure item")
		}
		item.SubdomainID = strFromNull(subdomainID)
		out = append(out, item)
	}
	return out, mapDBError(rows.Err(), "list cube structure items")
}

// Combinations returns all report cells ordered by code.
func (r *MetadataRepo) Combinations(ctx context.Context) ([]domain.Combination, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, template_code, metric_variable_id FROM combinations ORDER BY code`)
	if err != nil {
		return nil, mapDBError(err, "list combinations")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Combination
	for rows.Next() {
		var c domain.Combination
		var metric sql.NullString
		if err := rows.Scan(&c.ID, &c.Code, &c.TemplateCode, &metric); err != nil {
			return nil, mapDBError(err, "scan combination")
		}
		c.MetricVariableID = strFromNull(metric)
		out = append(out, c)
	}
	return out, mapDBError(rows.Err(), "list combinations")
}

// CombinationItems returns all selectors in combination and item order.
func (r *MetadataRepo) CombinationItems(ctx context.Context) ([]domain.CombinationItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT combination_id, variable_id, member_id, hierarchy_id, item_order
		 FROM combination_items ORDER BY combination_id, item_order, variable_id`)
	if err != nil {
		return nil, mapDBError(err, "list combination items")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.CombinationItem
	for rows.Next() {
		var item domain.CombinationItem
		var hierarchyID sql.NullString
		if err := rows.Scan(&item.CombinationID, &item.VariableID, &item.MemberID, &hierarchyID, &item.Order); err != nil {
			return nil, mapDBError(err, "scan combination item")
		}
		item.HierarchyID = strFromNull(hierarchyID)
		out = append(out, item)
	}
	return out, mapDBError(rows.Err(), "list combination items")
}
