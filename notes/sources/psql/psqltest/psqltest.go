// Package psqltest opens throwaway databases for tests.
package psqltest

import (
	"context"
	"testing"

	"notes/notes/sources/psql"

	"github.com/glebarez/sqlite"
)

// NewDatabase returns a migrated in-memory sqlite database. The pool holds a
// single connection because every sqlite :memory: connection is its own
// database.
func NewDatabase(t testing.TB) *psql.Database {
	t.Helper()

	ctx := context.Background()
	db, err := psql.Open(ctx, sqlite.Open(":memory:"), psql.Options{PoolSize: 1})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.CreateSchema(ctx); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}
