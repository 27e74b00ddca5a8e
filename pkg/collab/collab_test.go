package collab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sqlsync.dev/sqlsync/pkg/collab"
	"sqlsync.dev/sqlsync/pkg/statestore"
)

func TestExtractAppliedChanges(t *testing.T) {
	sql := `-- SQLSync Migration: feature
-- Generated: 2026-01-01T00:00:00Z

-- Added File: schema/tables/orders/table.sql
-- NOTE: File content has changed. Including complete content:
CREATE TABLE orders (id SERIAL PRIMARY KEY);

-- Modified File: schema/tables/users/table.sql
-- NOTE: File is declarative. Generated ALTER TABLE statements for incremental changes.
-- ADDED COLUMNS
ALTER TABLE public.users ADD COLUMN email TEXT;
`
	paths := collab.ExtractAppliedChanges(sql)
	assert.Equal(t, []string{
		"schema/tables/orders/table.sql",
		"schema/tables/users/table.sql",
	}, paths)
}

func TestReconcile_NewAndRemovedMigrations(t *testing.T) {
	state := statestore.New()
	state.Put("20260101000000_m1.sql", statestore.NewSnapshot())
	state.Put("20260103000000_m3_removed.sql", statestore.NewSnapshot())

	disk := []string{"20260101000000_m1.sql", "20260102000000_m2.sql"}

	report := collab.Reconcile(disk, state, nil, nil)
	assert.Equal(t, []string{"20260102000000_m2.sql"}, report.NewMigrations)
	assert.Equal(t, []string{"20260103000000_m3_removed.sql"}, report.RemovedMigrations)
	assert.False(t, report.HasConflicts())
}

func TestReconcile_DetectsConflict(t *testing.T) {
	state := statestore.New()
	state.Put("20260101000000_m1.sql", statestore.NewSnapshot())

	disk := []string{"20260101000000_m1.sql", "20260102000000_m2.sql"}

	m2Content := `-- Modified File: schema/tables/users/table.sql
-- NOTE: File is declarative. Generated ALTER TABLE statements for incremental changes.
`
	locallyModified := map[string]bool{"schema/tables/users/table.sql": true}

	report := collab.Reconcile(disk, state, map[string]string{"20260102000000_m2.sql": m2Content}, locallyModified)
	require.True(t, report.HasConflicts())
	assert.Equal(t, []string{"20260102000000_m2.sql"}, report.Conflicts)
}
