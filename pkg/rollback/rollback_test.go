package rollback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sqlsync.dev/sqlsync/pkg/rollback"
)

var names = []string{
	"20260101000000_m1.sql",
	"20260102000000_m2.sql",
	"20260103000000_m3.sql",
	"20260104000000_m4.sql",
}

func TestPlan_ProtectedMigrationInRangeBlocks(t *testing.T) {
	marked := map[string]bool{"20260102000000_m2.sql": true}
	_, err := rollback.Plan(names, "20260101000000_m1.sql", marked)
	require.Error(t, err)
	assert.ErrorIs(t, err, rollback.ErrProtected)
}

func TestPlan_ProtectedTargetItselfBlocks(t *testing.T) {
	marked := map[string]bool{"20260103000000_m3.sql": true}
	_, err := rollback.Plan(names, "20260103000000_m3.sql", marked)
	assert.ErrorIs(t, err, rollback.ErrProtected)
}

func TestPlan_UnprotectedRangeDescendingOrder(t *testing.T) {
	plan, err := rollback.Plan(names, "20260102000000_m2.sql", map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20260104000000_m4.sql",
		"20260103000000_m3.sql",
		"20260102000000_m2.sql",
	}, plan)
}

func TestPlan_UnknownTarget(t *testing.T) {
	_, err := rollback.Plan(names, "nope", map[string]bool{})
	assert.ErrorIs(t, err, rollback.ErrUnknownTarget)
}

func TestMark_RefusesOverLimit(t *testing.T) {
	marked := map[string]bool{}
	err := rollback.Mark(marked, names, 2)
	assert.ErrorIs(t, err, rollback.ErrTooManyMarks)
	assert.Empty(t, marked)
}

func TestMark_WithinLimit(t *testing.T) {
	marked := map[string]bool{}
	err := rollback.Mark(marked, names[:2], 2)
	require.NoError(t, err)
	assert.True(t, marked[names[0]])
	assert.True(t, marked[names[1]])
}

func TestUnmark(t *testing.T) {
	marked := map[string]bool{names[0]: true}
	rollback.Unmark(marked, []string{names[0]})
	assert.False(t, marked[names[0]])
}

func TestList_EnumeratesAscending(t *testing.T) {
	marked := map[string]bool{names[2]: true}
	authors := map[string]string{names[0]: "alice"}

	entries := rollback.List(names, marked, authors)
	require.Len(t, entries, 4)
	assert.Equal(t, names[0], entries[0].Name)
	assert.Equal(t, "alice", entries[0].Author)
	assert.True(t, entries[2].Marked)
}
