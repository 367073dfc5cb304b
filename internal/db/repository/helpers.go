// Package repository implements the metadata store ports using SQLite.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"regmap/internal/domain"
)

// dbtx is the query surface shared by *sql.DB and *sql.Tx, so a repository
// can run against the pool or inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// mapDBError folds driver-level failures into the fatal store category:
// the compiler never continues a run over a store it cannot read or write.
func mapDBError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound("%s: no rows", op)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return domain.ErrConflict("%s: already exists", op)
	}
	return domain.ErrStoreUnavailable(err, "%s: %v", op, err)
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func strFromNull(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
