package migration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
	"sqlsync.dev/sqlsync/pkg/differ"
	"sqlsync.dev/sqlsync/pkg/migration"
	"sqlsync.dev/sqlsync/pkg/sqlfile"
	"sqlsync.dev/sqlsync/pkg/statestore"
)

var fixedTime = time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)

func mustParse(t *testing.T, path, text string) *sqlfile.ParsedFile {
	t.Helper()
	pf, err := sqlfile.Parse(path, text)
	require.NoError(t, err)
	return pf
}

func TestRender_InitialCreate(t *testing.T) {
	pf := mustParse(t, "schema/tables/users/table.sql", `-- sqlsync: declarativeTable
CREATE TABLE users (id SERIAL PRIMARY KEY, username TEXT NOT NULL, email TEXT NOT NULL UNIQUE);`)

	diff := differ.Compute(statestore.NewSnapshot(), []*sqlfile.ParsedFile{pf})
	body := migration.Render(diff, "initial_schema", fixedTime)

	assert.Contains(t, body, "-- SQLSync Migration: initial_schema")
	assert.Contains(t, body, "-- Generated: 2026-07-31T12:00:00Z")
	assert.Contains(t, body, "-- Added File: schema/tables/users/table.sql")
	assert.Contains(t, body, "CREATE TABLE users")
}

func TestRender_AddColumn(t *testing.T) {
	oldPF := mustParse(t, "users.sql", `-- sqlsync: declarativeTable
CREATE TABLE users (id SERIAL PRIMARY KEY, username TEXT NOT NULL);`)
	newPF := mustParse(t, "users.sql", `-- sqlsync: declarativeTable
CREATE TABLE users (id SERIAL PRIMARY KEY, username TEXT NOT NULL, created_at TIMESTAMP DEFAULT NOW());`)

	snap := statestore.NewSnapshot()
	snap.DeclarativeTables["users.sql"] = oldPF.Table

	diff := differ.Compute(snap, []*sqlfile.ParsedFile{newPF})
	body := migration.Render(diff, "add_column", fixedTime)

	assert.Contains(t, body, "-- ADDED COLUMNS")
	assert.Contains(t, body, `ALTER TABLE public.users ADD COLUMN created_at TIMESTAMP DEFAULT NOW();`)
	assert.NotContains(t, body, "-- DROPPED COLUMNS")
	assert.NotContains(t, body, "-- MODIFIED COLUMNS")
}

func TestRender_MixedDeclarativeAndPlain(t *testing.T) {
	oldUsers := mustParse(t, "schema/tables/users/table.sql", `-- sqlsync: declarativeTable
CREATE TABLE users (id SERIAL PRIMARY KEY, username TEXT NOT NULL);`)
	newUsers := mustParse(t, "schema/tables/users/table.sql", `-- sqlsync: declarativeTable
CREATE TABLE users (id SERIAL PRIMARY KEY, username TEXT NOT NULL, email TEXT UNIQUE);`)
	newUtils := mustParse(t, "schema/functions/utils.sql", "select 2;")

	snap := statestore.NewSnapshot()
	snap.DeclarativeTables["schema/tables/users/table.sql"] = oldUsers.Table
	snap.FileContentChecksums["schema/functions/utils.sql"] = statestore.FileChecksum{Checksum: "old"}

	diff := differ.Compute(snap, []*sqlfile.ParsedFile{newUsers, newUtils})
	body := migration.Render(diff, "mixed", fixedTime)

	assert.Contains(t, body, "-- Modified File: schema/tables/users/table.sql")
	assert.Contains(t, body, `ALTER TABLE public.users ADD COLUMN email TEXT UNIQUE;`)
	assert.Contains(t, body, "-- Modified File: schema/functions/utils.sql")
	assert.Contains(t, body, "NOTE: File content has changed. Including complete content:")
	assert.Contains(t, body, "select 2;")
}

func TestRender_DeletedFileHasNoSQL(t *testing.T) {
	snap := statestore.NewSnapshot()
	snap.FileContentChecksums["gone.sql"] = statestore.FileChecksum{Checksum: "x"}

	diff := differ.Compute(snap, nil)
	body := migration.Render(diff, "remove_file", fixedTime)

	assert.Contains(t, body, "-- Deleted File: gone.sql")
	assert.Contains(t, body, "NOTE: DROP statements are NOT automatically generated.")
}

func TestRender_GoldenAddedPlainFile(t *testing.T) {
	pf := mustParse(t, "a.sql", "select 1;")
	diff := differ.Compute(statestore.NewSnapshot(), []*sqlfile.ParsedFile{pf})

	body := migration.Render(diff, "golden_case", fixedTime)

	golden.Assert(t, body, "render_added_plain.golden")
}

func TestRender_Deterministic(t *testing.T) {
	pf := mustParse(t, "a.sql", "select 1;")
	diff := differ.Compute(statestore.NewSnapshot(), []*sqlfile.ParsedFile{pf})

	first := migration.Render(diff, "x", fixedTime)
	second := migration.Render(diff, "x", fixedTime)
	assert.Equal(t, first, second)
}
