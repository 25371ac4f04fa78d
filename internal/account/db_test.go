package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRow scans a stored account row, or fails.
type fakeRow struct {
	err  error
	id   int64
	name string
	hash *string
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	*(dest[0].(*int64)) = r.id
	*(dest[1].(*string)) = r.name
	*(dest[2].(**string)) = r.hash
	return nil
}

// fakeDB is an in-memory DBTX. It answers the account lookup from its
// row fields and records every Exec; failOn makes the Exec whose SQL
// mentions that entity fail.
type fakeDB struct {
	row fakeRow

	execQueries []string
	execArgs    [][]any
	rowsPerExec int64
	failOn      string
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	return db.row
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if db.failOn != "" && containsEntity(sql, db.failOn) {
		return pgconn.CommandTag{}, fmt.Errorf("simulated %s fault", db.failOn)
	}

	db.execQueries = append(db.execQueries, sql)
	db.execArgs = append(db.execArgs, args)
	return pgconn.NewCommandTag(fmt.Sprintf("DELETE %d", db.rowsPerExec)), nil
}

func containsEntity(sql, entity string) bool {
	for _, step := range cascadeSteps {
		if step.entity == entity && step.query == sql {
			return true
		}
	}
	return false
}

func ptr(s string) *string { return &s }
