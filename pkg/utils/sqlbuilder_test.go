package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"sqlsync.dev/sqlsync/pkg/utils"
)

func TestSQLBuilder_CREATE(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name:     "CREATE TABLE simple",
			builder:  func() *utils.SQLBuilder { return utils.NewSQLBuilder().Create("TABLE").Name("users") },
			expected: `CREATE TABLE users;`,
		},
		{
			name: "CREATE TABLE qualified",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Create("TABLE").QualifiedName("public", "users")
			},
			expected: `CREATE TABLE public.users;`,
		},
		{
			name:     "CREATE TABLE IF NOT EXISTS",
			builder:  func() *utils.SQLBuilder { return utils.NewSQLBuilder().Create("TABLE").IfNotExists().Name("users") },
			expected: `CREATE TABLE IF NOT EXISTS users;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder().String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_DROP(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name:     "DROP TABLE",
			builder:  func() *utils.SQLBuilder { return utils.NewSQLBuilder().Drop("TABLE").Name("users") },
			expected: `DROP TABLE users;`,
		},
		{
			name:     "DROP TABLE IF EXISTS",
			builder:  func() *utils.SQLBuilder { return utils.NewSQLBuilder().Drop("TABLE").IfExists().Name("users") },
			expected: `DROP TABLE IF EXISTS users;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder().String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_ALTER(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name: "ALTER TABLE ADD COLUMN",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Alter("TABLE").QualifiedName("public", "users").Raw("ADD COLUMN").Raw(`email TEXT`)
			},
			expected: `ALTER TABLE public.users ADD COLUMN email TEXT;`,
		},
		{
			name: "ALTER TABLE DROP COLUMN",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Alter("TABLE").QualifiedName("public", "users").Raw("DROP COLUMN").Name("email")
			},
			expected: `ALTER TABLE public.users DROP COLUMN email;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder().String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_RENAME(t *testing.T) {
	builder := utils.NewSQLBuilder().Alter("TABLE").QualifiedName("public", "old_table").Rename().QualifiedTo("public", "new_table")
	require.Equal(t, `ALTER TABLE public.old_table RENAME TO public.new_table;`, builder.String())
}

func TestSQLBuilder_Comment(t *testing.T) {
	tests := []struct {
		name     string
		comment  string
		expected string
	}{
		{
			name:     "simple comment",
			comment:  "Test comment",
			expected: `CREATE TABLE users COMMENT 'Test comment';`,
		},
		{
			name:     "comment with apostrophe",
			comment:  "User's table",
			expected: `CREATE TABLE users COMMENT 'User''s table';`,
		},
		{
			name:     "empty comment",
			comment:  "",
			expected: `CREATE TABLE users;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.NewSQLBuilder().Create("TABLE").Name("users").Comment(tt.comment).String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_StringWithoutSemicolon(t *testing.T) {
	builder := utils.NewSQLBuilder().Create("TABLE").Name("users")

	require.Equal(t, `CREATE TABLE users;`, builder.String())
	require.Equal(t, `CREATE TABLE users`, builder.StringWithoutSemicolon())
}

func TestSQLBuilder_Escaped(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "simple value",
			value:    "now()",
			expected: `ALTER TABLE users ALTER COLUMN created_at SET DEFAULT 'now()';`,
		},
		{
			name:     "value with apostrophe",
			value:    "it's",
			expected: `ALTER TABLE users ALTER COLUMN created_at SET DEFAULT 'it''s';`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.NewSQLBuilder().
				Alter("TABLE").Name("users").
				Raw(`ALTER COLUMN created_at SET DEFAULT`).
				Escaped(tt.value).
				String()
			require.Equal(t, tt.expected, result)
		})
	}
}
