package repository

import (
	"context"
	"database/sql"

	"regmap/internal/domain"
)

// MappingRepo implements domain.MappingWriter against the SQLite
// metastore. Inserts rely on the composite unique keys of the link tables,
// so re-resolving an unchanged snapshot is a no-op on the stored key set.
type MappingRepo struct {
	db dbtx
}

// NewMappingRepo creates a new MappingRepo.
func NewMappingRepo(db *sql.DB) *MappingRepo {
	return &MappingRepo{db: db}
}

// WithTx runs fn against a transaction-scoped writer. An error from fn
// rolls the transaction back, so a failure mid-persist commits nothing.
// Calling WithTx on an already transactional repo reuses the open
// transaction.
func (r *MappingRepo) WithTx(ctx context.Context, fn func(domain.MappingWriter) error) error {
	conn, ok := r.db.(*sql.DB)
	if !ok {
		return fn(r)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return mapDBError(err, "begin mapping transaction")
	}
	if err := fn(&MappingRepo{db: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapDBError(err, "commit mapping transaction")
	}
	return nil
}

// InsertCubeLink stores a cube link unless its identity already exists,
// and returns the ID of the stored link either way.
func (r *MappingRepo) InsertCubeLink(ctx context.Context, link *domain.CubeLink) (string, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO cube_links (id, code, report_template, foreign_cube_id, primary_cube_id)
		 VALUES (?, ?, ?, ?, ?)`,
		link.ID, link.Code, link.ReportTemplate, link.ForeignCubeID, link.PrimaryCubeID)
	if err != nil {
		return "", mapDBError(err, "insert cube link")
	}

	var id string
	err = r.db.QueryRowContext(ctx,
		`SELECT id FROM cube_links WHERE report_template = ? AND foreign_cube_id = ? AND code = ?`,
		link.ReportTemplate, link.ForeignCubeID, link.Code).Scan(&id)
	if err != nil {
		return "", mapDBError(err, "read back cube link")
	}
	return id, nil
}

// InsertItemLink stores an item link unless its identity already exists.
func (r *MappingRepo) InsertItemLink(ctx context.Context, link *domain.CubeStructureItemLink) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO cube_structure_item_links
		 (id, cube_link_id, primary_item_id, foreign_item_id, primary_variable_id, foreign_variable_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		link.ID, link.CubeLinkID, link.PrimaryItemID, link.ForeignItemID,
		link.PrimaryVariableID, link.ForeignVariableID)
	return mapDBError(err, "insert item link")
}

// DeleteForTemplate removes all links of a report template. Item links go
// with their owning cube links through the cascade.
func (r *MappingRepo) DeleteForTemplate(ctx context.Context, template string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cube_links WHERE report_template = ?`, template)
	return mapDBError(err, "delete links for template")
}

// CubeLinks returns the stored cube links of a template ordered by code.
func (r *MappingRepo) CubeLinks(ctx context.Context, template string) ([]domain.CubeLink, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, report_template, foreign_cube_id, primary_cube_id
		 FROM cube_links WHERE report_template = ? ORDER BY code, foreign_cube_id`, template)
	if err != nil {
		return nil, mapDBError(err, "list cube links")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.CubeLink
	for rows.Next() {
		var l domain.CubeLink
		if err := rows.Scan(&l.ID, &l.Code, &l.ReportTemplate, &l.ForeignCubeID, &l.PrimaryCubeID); err != nil {
			return nil, mapDBError(err, "scan cube link")
		}
		out = append(out, l)
	}
	return out, mapDBError(rows.Err(), "list cube links")
}

// ItemLinks returns the stored item links of a cube link.
func (r *MappingRepo) ItemLinks(ctx context.Context, cubeLinkID string) ([]domain.CubeStructureItemLink, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, cube_link_id, primary_item_id, foreign_item_id, primary_variable_id, foreign_variable_id
		 FROM cube_structure_item_links WHERE cube_link_id = ?
		 ORDER BY primary_variable_id, foreign_variable_id`, cubeLinkID)
	if err != nil {
		return nil, mapDBError(err, "list item links")
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.CubeStructureItemLink
	for rows.Next() {
		var l domain.CubeStructureItemLink
		if err := rows.Scan(&l.ID, &l.CubeLinkID, &l.PrimaryItemID, &l.ForeignItemID,
			&l.PrimaryVariableID, &l.ForeignVariableID); err != nil {
			return nil, mapDBError(err, "scan item link")
		}
		out = append(out, l)
	}
	return out, mapDBError(rows.Err(), "list item links")
}
