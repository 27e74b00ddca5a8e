package directive_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"sqlsync.dev/sqlsync/pkg/directive"
)

func TestClassify_DeclarativeTable(t *testing.T) {
	text := "-- sqlsync: declarativeTable\nCREATE TABLE users (id SERIAL PRIMARY KEY);\n"

	c, err := directive.Classify(text)
	require.NoError(t, err)
	require.Equal(t, directive.DeclarativeTable, c.Type)
	require.False(t, c.Critical)
}

func TestClassify_SplitStatements(t *testing.T) {
	text := "-- sqlsync: splitStatements\n-- sqlsync: startStatement\nCREATE FUNCTION f() RETURNS int AS $$ SELECT 1 $$;\n-- sqlsync: endStatement\n"

	c, err := directive.Classify(text)
	require.NoError(t, err)
	require.Equal(t, directive.SplitStatements, c.Type)
}

func TestClassify_DefaultsToFileContent(t *testing.T) {
	c, err := directive.Classify("SELECT 1;\n")
	require.NoError(t, err)
	require.Equal(t, directive.FileContent, c.Type)
}

func TestClassify_CriticalAnnotation(t *testing.T) {
	text := "-- sqlsync: declarativeTable\n-- sqlsync: critical\nCREATE TABLE users (id SERIAL);\n"

	c, err := directive.Classify(text)
	require.NoError(t, err)
	require.True(t, c.Critical)
}

func TestClassify_LeadingCommentsDoNotCloseBlock(t *testing.T) {
	text := "-- copyright 2026\n--\n-- sqlsync: declarativeTable\nCREATE TABLE users (id SERIAL);\n"

	c, err := directive.Classify(text)
	require.NoError(t, err)
	require.Equal(t, directive.DeclarativeTable, c.Type)
}

func TestClassify_TypeDirectiveAfterCodeIsFatal(t *testing.T) {
	text := "CREATE TABLE users (id SERIAL);\n-- sqlsync: declarativeTable\n"

	_, err := directive.Classify(text)
	require.ErrorIs(t, err, directive.ErrDirectivePlacement)
}

func TestClassify_DuplicateTypeDirectiveIsFatal(t *testing.T) {
	text := "-- sqlsync: declarativeTable\n-- sqlsync: splitStatements\nCREATE TABLE users (id SERIAL);\n"

	_, err := directive.Classify(text)
	require.ErrorIs(t, err, directive.ErrDirectivePlacement)
}

func TestClassify_IrregularSpacing(t *testing.T) {
	c, err := directive.Classify("--sqlsync:   declarativeTable   \nCREATE TABLE t (id SERIAL);\n")
	require.NoError(t, err)
	require.Equal(t, directive.DeclarativeTable, c.Type)
}
