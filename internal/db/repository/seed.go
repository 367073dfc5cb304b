package repository

import (
	"context"
	"database/sql"

	"regmap/internal/domain"
)

// SeedRepo inserts catalogue metadata into the metastore. The compiler
// itself never writes metadata; this exists for loading fixtures and
// sample catalogues.
type SeedRepo struct {
	db *sql.DB
}

// NewSeedRepo creates a new SeedRepo.
func NewSeedRepo(db *sql.DB) *SeedRepo {
	return &SeedRepo{db: db}
}

func (r *SeedRepo) InsertDomain(ctx context.Context, d domain.Domain) error {
	enumerated := int64(0)
	if d.IsEnumerated {
		enumerated = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO domains (id, code, name, is_enumerated) VALUES (?, ?, ?, ?)`,
		d.ID, d.Code, d.Name, enumerated)
	return mapDBError(err, "insert domain")
}

func (r *SeedRepo) InsertMember(ctx context.Context, m domain.Member) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (id, domain_id, code, name) VALUES (?, ?, ?, ?)`,
		m.ID, m.DomainID, m.Code, m.Name)
	return mapDBError(err, "insert member")
}

func (r *SeedRepo) InsertHierarchy(ctx context.Context, h domain.Hierarchy) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hierarchies (id, domain_id, code, name) VALUES (?, ?, ?, ?)`,
		h.ID, h.DomainID, h.Code, h.Name)
	return mapDBError(err, "insert hierarchy")
}

func (r *SeedRepo) InsertHierarchyNode(ctx context.Context, n domain.HierarchyNode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hierarchy_nodes (hierarchy_id, parent_member_id, child_member_id, level, node_order)
		 VALUES (?, ?, ?, ?, ?)`,
		n.HierarchyID, n.ParentMemberID, n.ChildMemberID, n.Level, n.Order)
	return mapDBError(err, "insert hierarchy node")
}

func (r *SeedRepo) InsertVariable(ctx context.Context, v domain.Variable) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO variables (id, domain_id, code, name, var_type) VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.DomainID, v.Code, v.Name, v.Type)
	return mapDBError(err, "insert variable")
}

func (r *SeedRepo) InsertSubdomain(ctx context.Context, s domain.Subdomain) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subdomains (id, domain_id, code, name) VALUES (?, ?, ?, ?)`,
		s.ID, s.DomainID, s.Code, s.Name)
	return mapDBError(err, "insert subdomain")
}

func (r *SeedRepo) InsertSubdomainEnumeration(ctx context.Context, e domain.SubdomainEnumeration) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subdomain_enumerations (subdomain_id, member_id) VALUES (?, ?)`,
		e.SubdomainID, e.MemberID)
	return mapDBError(err, "insert subdomain enumeration")
}

func (r *SeedRepo) InsertCube(ctx context.Context, c domain.Cube) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cubes (id, code, name, cube_type, framework_code) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Code, c.Name, c.CubeType, c.FrameworkCode)
	return mapDBError(err, "insert cube")
}

func (r *SeedRepo) InsertCubeStructureItem(ctx context.Context, item domain.CubeStructureItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cube_structure_items (id, cube_id, variable_id, subdomain_id, item_order)
		 VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.CubeID, item.VariableID, nullStr(item.SubdomainID), item.Order)
	return mapDBError(err, "insert cube structure item")
}

func (r *SeedRepo) InsertCombination(ctx context.Context, c domain.Combination) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO combinations (id, code, template_code, metric_variable_id) VALUES (?, ?, ?, ?)`,
		c.ID, c.Code, c.TemplateCode, nullStr(c.MetricVariableID))
	return mapDBError(err, "insert combination")
}

func (r *SeedRepo) InsertCombinationItem(ctx context.Context, item domain.CombinationItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO combination_items (combination_id, variable_id, member_id, hierarchy_id, item_order)
		 VALUES (?, ?, ?, ?, ?)`,
		item.CombinationID, item.VariableID, item.MemberID, nullStr(item.HierarchyID), item.Order)
	return mapDBError(err, "insert combination item")
}
