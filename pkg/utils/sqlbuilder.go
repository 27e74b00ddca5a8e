package utils

import (
	"fmt"
	"strings"
)

// SQLBuilder provides a fluent interface for building Postgres DDL statements.
// It handles common patterns like identifier formatting and conditional
// clause building to reduce duplication across the ALTER TABLE statements
// the coldiff package emits.
//
// Example usage:
//
//	sql := NewSQLBuilder().
//		Alter("TABLE").
//		QualifiedName("public", "users").
//		Raw("ADD COLUMN").
//		Raw(`created_at TIMESTAMP`).
//		String()
//	// Output: ALTER TABLE public.users ADD COLUMN created_at TIMESTAMP;
type SQLBuilder struct {
	parts []string
}

// NewSQLBuilder creates a new SQLBuilder instance.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{
		parts: make([]string, 0, 10),
	}
}

// Create adds a CREATE clause with the specified object type.
func (b *SQLBuilder) Create(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "CREATE", objectType)
	return b
}

// Drop adds a DROP clause with the specified object type.
func (b *SQLBuilder) Drop(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "DROP", objectType)
	return b
}

// Alter adds an ALTER clause with the specified object type.
func (b *SQLBuilder) Alter(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "ALTER", objectType)
	return b
}

// Rename adds a RENAME clause.
func (b *SQLBuilder) Rename() *SQLBuilder {
	b.parts = append(b.parts, "RENAME")
	return b
}

// IfExists adds an IF EXISTS clause. Called after DROP operations.
func (b *SQLBuilder) IfExists() *SQLBuilder {
	b.parts = append(b.parts, "IF", "EXISTS")
	return b
}

// IfNotExists adds an IF NOT EXISTS clause. Called after CREATE operations.
func (b *SQLBuilder) IfNotExists() *SQLBuilder {
	b.parts = append(b.parts, "IF", "NOT", "EXISTS")
	return b
}

// Name adds an object name.
func (b *SQLBuilder) Name(name string) *SQLBuilder {
	if name != "" {
		b.parts = append(b.parts, Identifier(name))
	}
	return b
}

// QualifiedName adds a schema-qualified name. If schema is empty, only the
// name is added.
func (b *SQLBuilder) QualifiedName(schema, name string) *SQLBuilder {
	qualifiedName := QualifiedName(schema, name)
	if qualifiedName != "" {
		b.parts = append(b.parts, qualifiedName)
	}
	return b
}

// To adds a TO clause for rename operations.
func (b *SQLBuilder) To(name string) *SQLBuilder {
	if name != "" {
		b.parts = append(b.parts, "TO", Identifier(name))
	}
	return b
}

// QualifiedTo adds a TO clause with a schema-qualified name.
func (b *SQLBuilder) QualifiedTo(schema, name string) *SQLBuilder {
	qualifiedName := QualifiedName(schema, name)
	if qualifiedName != "" {
		b.parts = append(b.parts, "TO", qualifiedName)
	}
	return b
}

// Comment adds a COMMENT clause. The comment is quoted and SQL-escaped.
func (b *SQLBuilder) Comment(comment string) *SQLBuilder {
	if comment != "" {
		escapedComment := strings.ReplaceAll(comment, "'", "''")
		b.parts = append(b.parts, "COMMENT", fmt.Sprintf("'%s'", escapedComment))
	}
	return b
}

// Escaped adds an escaped SQL string value with single quotes.
func (b *SQLBuilder) Escaped(value string) *SQLBuilder {
	if value != "" {
		escapedValue := strings.ReplaceAll(value, "'", "''")
		b.parts = append(b.parts, fmt.Sprintf("'%s'", escapedValue))
	}
	return b
}

// Raw adds raw SQL text to the builder. Use for clauses that don't fit the
// fluent pattern, like ADD COLUMN/DROP COLUMN/ALTER COLUMN bodies.
func (b *SQLBuilder) Raw(sql string) *SQLBuilder {
	if sql != "" {
		b.parts = append(b.parts, sql)
	}
	return b
}

// String builds and returns the final SQL statement with a semicolon.
func (b *SQLBuilder) String() string {
	if len(b.parts) == 0 {
		return ""
	}
	return strings.Join(b.parts, " ") + ";"
}

// StringWithoutSemicolon builds and returns the final SQL statement without
// a trailing semicolon. Useful for building parts of larger statements.
func (b *SQLBuilder) StringWithoutSemicolon() string {
	return strings.Join(b.parts, " ")
}
