package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// withTx runs fn in a transaction, committing only when fn succeeds.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// mapError converts driver errors the caller can act on into domain errors.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "foreign_key_violation":
			return domain.NewValidation("referenced account or resource does not exist")
		case "check_violation":
			return domain.NewConflict("%s violates a data constraint", op)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// where accumulates AND-ed predicates with positional arguments.
type where struct {
	clauses []string
	args    []interface{}
}

// add appends a predicate; "?" in clause is replaced by the next placeholder.
func (w *where) add(clause string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.Replace(clause, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *where) placeholder(arg interface{}) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}
