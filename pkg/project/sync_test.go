package project_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSync_CleanProjectReportsNothing(t *testing.T) {
	p := newTestProject(t,
		schemaFile{relpath: "db/users.sql", sql: "-- sqlsync: declarativeTable\nCREATE TABLE users (id SERIAL PRIMARY KEY);\n"},
	)

	report, err := p.Sync()
	require.NoError(t, err)
	require.Empty(t, report.Collab.NewMigrations)
	require.Empty(t, report.Collab.RemovedMigrations)
	require.False(t, report.Collab.HasConflicts())
	require.False(t, report.LedgerTampered)
}

func TestSync_DetectsNewOnDiskMigration(t *testing.T) {
	p := newTestProject(t)
	require.NoError(t, p.WriteMigration("20260101000000_add_users.sql", "-- migration\n"))

	report, err := p.Sync()
	require.NoError(t, err)
	require.Contains(t, report.Collab.NewMigrations, "20260101000000_add_users.sql")
}
