package database

import (
	"context"
	"database/sql"
)

// Queryer is the slice of database/sql shared by *sql.DB and *sql.Tx.
// Repositories take a Queryer so the same method runs standalone or inside a
// transaction.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RowScanner decodes one result row into T. One decoder per entity,
// independent of which query produced the rows.
type RowScanner[T any] func(row interface{ Scan(dest ...any) error }) (T, error)

// QuerySingle runs a query expected to match at most one row. A miss returns
// (zero, false, nil) rather than an error.
func QuerySingle[T any](ctx context.Context, q Queryer, scan RowScanner[T], query string, args ...any) (T, bool, error) {
	row := q.QueryRowContext(ctx, query, args...)
	v, err := scan(row)
	if err == sql.ErrNoRows {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// QueryList runs a query and decodes every row with scan.
func QueryList[T any](ctx context.Context, q Queryer, scan RowScanner[T], query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Exists reports whether the query matches at least one row. The query should
// be of the form "SELECT 1 FROM ... WHERE ...".
func Exists(ctx context.Context, q Queryer, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count runs a COUNT(*) query.
func Count(ctx context.Context, q Queryer, query string, args ...any) (int64, error) {
	var n int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ExecuteInsert runs an INSERT and returns the generated id.
func ExecuteInsert(ctx context.Context, q Queryer, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ExecuteUpdate runs an UPDATE or DELETE and returns the affected row count.
func ExecuteUpdate(ctx context.Context, q Queryer, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
