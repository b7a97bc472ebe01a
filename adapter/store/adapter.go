package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// batchSize caps the number of rows written by a single statement so that
// the number of bound parameters stays well below sqlite's limit.
const batchSize = 500

type Adapter struct {
	db     *sql.DB
	logger *zap.Logger
}

type Option func(*Adapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(db *sql.DB, options ...Option) *Adapter {
	a := &Adapter{
		db:     db,
		logger: zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().Info("init sqlite store adapter")

	return a
}

type Scannable interface {
	Scan(dest ...any) error
}

type Query interface {
	SQL() (string, []any)
}

func execQueryCheckRowsAffected(ctx context.Context, tx *sql.Tx, q Query) error {
	query, args := q.SQL()
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement failed: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("exec context failed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected")
	}

	return nil
}

func execQuery(ctx context.Context, tx *sql.Tx, q Query) error {
	query, args := q.SQL()
	return exec(ctx, tx, query, args...)
}

func exec(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement failed: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, args...); err != nil {
		return fmt.Errorf("exec context failed: %w", err)
	}

	return nil
}

// placeholders returns "?, ?, ?" for n parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
