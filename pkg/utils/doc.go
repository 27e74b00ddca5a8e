// Package utils provides common utility functions shared across sqlsync's
// packages: package-agnostic generic equality helpers live in
// sqlsync.dev/sqlsync/pkg/compare, while this package covers identifier
// quoting, value-type sniffing, and DDL string assembly.
//
// # Identifier utilities (identifier.go)
//
// Identifier and QualifiedName format table, schema, and column names for
// generated DDL in Postgres's default unquoted form, normalizing away any
// quotes a caller's input may already carry rather than adding them.
//
// # Value type utilities (validation.go)
//
// IsNumericValue and IsBooleanValue classify a raw DEFAULT expression token
// so pkg/decltable's DefaultExpressionsEqual can treat cosmetic variants
// (TRUE vs true, 0 vs 0.0) as equal.
//
// # SQL builder (sqlbuilder.go)
//
// SQLBuilder is a small fluent assembler for DDL shapes (CREATE, DROP,
// ALTER TABLE ADD/DROP/ALTER COLUMN, RENAME TO); the column differ builds
// its ALTER TABLE statements with it.
package utils
