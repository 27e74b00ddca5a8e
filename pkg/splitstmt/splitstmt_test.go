package splitstmt_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"sqlsync.dev/sqlsync/pkg/splitstmt"
)

func TestParse_SingleStatement(t *testing.T) {
	text := "-- sqlsync: splitStatements\n" +
		"-- sqlsync: startStatement\n" +
		"CREATE FUNCTION f() RETURNS int AS $$ SELECT 1 $$;\n" +
		"-- sqlsync: endStatement\n"

	parsed, err := splitstmt.Parse(text)
	require.NoError(t, err)
	require.Len(t, parsed.Statements, 1)
	require.Contains(t, parsed.Statements[0].Text, "CREATE FUNCTION f()")
}

func TestParse_MultipleStatements_PreservesOrder(t *testing.T) {
	text := "-- sqlsync: splitStatements\n" +
		"-- sqlsync: startStatement\n" +
		"CREATE FUNCTION a() RETURNS int AS $$ SELECT 1 $$;\n" +
		"-- sqlsync: endStatement\n" +
		"-- sqlsync: startStatement\n" +
		"CREATE FUNCTION b() RETURNS int AS $$ SELECT 2 $$;\n" +
		"-- sqlsync: endStatement\n"

	parsed, err := splitstmt.Parse(text)
	require.NoError(t, err)
	require.Len(t, parsed.Statements, 2)
	require.Contains(t, parsed.Statements[0].Text, "CREATE FUNCTION a()")
	require.Contains(t, parsed.Statements[1].Text, "CREATE FUNCTION b()")
}

func TestParse_DuplicateChecksumFails(t *testing.T) {
	text := "-- sqlsync: startStatement\nSELECT 1;\n-- sqlsync: endStatement\n" +
		"-- sqlsync: startStatement\nSELECT 1;\n-- sqlsync: endStatement\n"

	_, err := splitstmt.Parse(text)
	require.ErrorIs(t, err, splitstmt.ErrDuplicateChecksum)
}

func TestParse_UnclosedCaptureFails(t *testing.T) {
	text := "-- sqlsync: startStatement\nSELECT 1;\n"

	_, err := splitstmt.Parse(text)
	require.ErrorIs(t, err, splitstmt.ErrUnclosed)
}

func TestParse_MissingMarkersFails(t *testing.T) {
	_, err := splitstmt.Parse("SELECT 1;\n")
	require.ErrorIs(t, err, splitstmt.ErrMissingMarkers)
}

func TestParse_ChecksumIsWhitespaceInsensitive(t *testing.T) {
	a := "-- sqlsync: startStatement\nSELECT   1;\n-- sqlsync: endStatement\n"
	b := "-- sqlsync: startStatement\nSELECT\n1;\n-- sqlsync: endStatement\n"

	parsedA, err := splitstmt.Parse(a)
	require.NoError(t, err)
	parsedB, err := splitstmt.Parse(b)
	require.NoError(t, err)

	require.Equal(t, parsedA.Statements[0].Checksum, parsedB.Statements[0].Checksum)
}

func TestLookup(t *testing.T) {
	text := "-- sqlsync: startStatement\nSELECT 1;\n-- sqlsync: endStatement\n"
	parsed, err := splitstmt.Parse(text)
	require.NoError(t, err)

	stmt, ok := parsed.Lookup(parsed.Statements[0].Checksum)
	require.True(t, ok)
	require.Contains(t, stmt.Text, "SELECT 1;")

	_, ok = parsed.Lookup("does-not-exist")
	require.False(t, ok)
}
