// Package coldiff implements the declarative-table column differ (§4.5): it
// translates two parsed CREATE TABLE definitions into the ordered sequence
// of incremental ALTER TABLE statements needed to go from the old shape to
// the new one.
//
// Grounded on housekeeper's pkg/schema/table.go's compareColumns and
// generateAlterTableSQL, which compute the same ADDED/DROPPED/MODIFIED
// column classification and per-field ALTER emission for ClickHouse DDL;
// here the emission targets Postgres ALTER TABLE ADD/DROP/ALTER COLUMN
// syntax via pkg/utils.SQLBuilder instead of ClickHouse's dialect.
package coldiff

import (
	"fmt"

	"sqlsync.dev/sqlsync/pkg/decltable"
	"sqlsync.dev/sqlsync/pkg/utils"
)

// ModifiedColumn is a column present in both tables whose field-wise
// equality failed; Statements holds one independent ALTER COLUMN statement
// per changed field, in the fixed order TYPE, nullability, default,
// constraint flags.
type ModifiedColumn struct {
	Name       string
	Statements []string
}

// Result is the full column-level diff between an old and a new table
// definition, plus the rendered statements in emission order.
type Result struct {
	Added    []decltable.Column
	Dropped  []decltable.Column
	Modified []ModifiedColumn

	// Renamed is set when a table or schema rename was detected instead of
	// (or alongside no) column changes.
	Renamed bool
	// Statements is the complete ordered list of ALTER TABLE statements:
	// all ADDs (new's column order), then all ALTERs (new's column order),
	// then all DROPs (old's column order). A detected rename is emitted as
	// its own statement ahead of any column statements.
	Statements []string
}

// Diff computes the column-level diff between old and new. old may be nil,
// in which case the caller is expected to render a full CREATE TABLE
// instead of calling Diff — Diff on a nil old returns an empty Result with
// every new column reported as Added but no statements, since the "no
// previous file" case never emits ALTERs per §4.5.
func Diff(old, new *decltable.TableDefinition) Result {
	var result Result

	if old == nil {
		result.Added = append(result.Added, new.Columns...)
		return result
	}

	oldByName := make(map[string]decltable.Column, len(old.Columns))
	for _, c := range old.Columns {
		oldByName[c.Name] = c
	}
	newByName := make(map[string]decltable.Column, len(new.Columns))
	for _, c := range new.Columns {
		newByName[c.Name] = c
	}

	for _, c := range new.Columns {
		if _, ok := oldByName[c.Name]; !ok {
			result.Added = append(result.Added, c)
		}
	}
	for _, c := range old.Columns {
		if _, ok := newByName[c.Name]; !ok {
			result.Dropped = append(result.Dropped, c)
		}
	}
	for _, c := range new.Columns {
		oc, ok := oldByName[c.Name]
		if !ok || oc.Equal(c) {
			continue
		}
		result.Modified = append(result.Modified, ModifiedColumn{
			Name:       c.Name,
			Statements: fieldStatements(old.Schema, old.Table, oc, c),
		})
	}

	qualified := utils.QualifiedName(old.Schema, old.Table)

	if rename := renameStatement(old, new); rename != "" {
		result.Renamed = true
		result.Statements = append(result.Statements, rename)
	}

	for _, c := range result.Added {
		result.Statements = append(result.Statements,
			utils.NewSQLBuilder().Alter("TABLE").Raw(qualified).Raw("ADD COLUMN").Raw(renderColumnDef(c)).String())
	}
	for _, m := range result.Modified {
		result.Statements = append(result.Statements, m.Statements...)
	}
	for _, c := range result.Dropped {
		result.Statements = append(result.Statements,
			utils.NewSQLBuilder().Alter("TABLE").Raw(qualified).Raw("DROP COLUMN").Name(c.Name).StringWithoutSemicolon()+";")
	}

	return result
}

// renameStatement detects a table rename per §4.5: schema or table_name
// differs and no other structural change is present (columns identical).
func renameStatement(old, new *decltable.TableDefinition) string {
	if old.Schema == new.Schema && old.Table == new.Table {
		return ""
	}
	if !old.EqualIgnoringName(new) {
		return ""
	}

	oldQualified := utils.QualifiedName(old.Schema, old.Table)
	if old.Schema != new.Schema && old.Table == new.Table {
		return utils.NewSQLBuilder().Alter("TABLE").Raw(oldQualified).Raw("SET SCHEMA").Name(new.Schema).String()
	}
	return utils.NewSQLBuilder().Alter("TABLE").Raw(oldQualified).Rename().To(new.Table).String()
}

func fieldStatements(schema, table string, old, new decltable.Column) []string {
	qualified := utils.QualifiedName(schema, table)
	var stmts []string

	if old.DataType != new.DataType {
		stmts = append(stmts, utils.NewSQLBuilder().
			Alter("TABLE").Raw(qualified).Raw("ALTER COLUMN").Name(new.Name).
			Raw("TYPE").Raw(new.DataType).String())
	}

	if old.Nullable != new.Nullable {
		clause := "SET NOT NULL"
		if new.Nullable {
			clause = "DROP NOT NULL"
		}
		stmts = append(stmts, utils.NewSQLBuilder().
			Alter("TABLE").Raw(qualified).Raw("ALTER COLUMN").Name(new.Name).Raw(clause).String())
	}

	if old.HasDefault != new.HasDefault || !decltable.DefaultExpressionsEqual(old.DefaultExpression, new.DefaultExpression) {
		if new.HasDefault {
			stmts = append(stmts, utils.NewSQLBuilder().
				Alter("TABLE").Raw(qualified).Raw("ALTER COLUMN").Name(new.Name).
				Raw("SET DEFAULT").Raw(new.DefaultExpression).String())
		} else {
			stmts = append(stmts, utils.NewSQLBuilder().
				Alter("TABLE").Raw(qualified).Raw("ALTER COLUMN").Name(new.Name).Raw("DROP DEFAULT").String())
		}
	}

	if old.PrimaryKey != new.PrimaryKey {
		if new.PrimaryKey {
			stmts = append(stmts, utils.NewSQLBuilder().
				Alter("TABLE").Raw(qualified).Raw("ADD PRIMARY KEY").Raw(fmt.Sprintf("(%s)", new.Name)).String())
		} else {
			stmts = append(stmts, utils.NewSQLBuilder().
				Alter("TABLE").Raw(qualified).Raw("DROP CONSTRAINT IF EXISTS").
				Name(fmt.Sprintf("%s_pkey", table)).String())
		}
	}

	if old.Unique != new.Unique {
		if new.Unique {
			stmts = append(stmts, utils.NewSQLBuilder().
				Alter("TABLE").Raw(qualified).Raw("ADD CONSTRAINT").
				Name(fmt.Sprintf("%s_%s_key", table, new.Name)).
				Raw("UNIQUE").Raw(fmt.Sprintf("(%s)", new.Name)).String())
		} else {
			stmts = append(stmts, utils.NewSQLBuilder().
				Alter("TABLE").Raw(qualified).Raw("DROP CONSTRAINT IF EXISTS").
				Name(fmt.Sprintf("%s_%s_key", table, new.Name)).String())
		}
	}

	if old.CheckConstraint != new.CheckConstraint {
		if new.CheckConstraint != "" {
			stmts = append(stmts, utils.NewSQLBuilder().
				Alter("TABLE").Raw(qualified).Raw("ADD CONSTRAINT").
				Name(fmt.Sprintf("%s_%s_check", table, new.Name)).
				Raw(fmt.Sprintf("CHECK (%s)", new.CheckConstraint)).String())
		} else {
			stmts = append(stmts, utils.NewSQLBuilder().
				Alter("TABLE").Raw(qualified).Raw("DROP CONSTRAINT IF EXISTS").
				Name(fmt.Sprintf("%s_%s_check", table, old.Name)).String())
		}
	}

	if !old.ForeignKey.Equal(new.ForeignKey) {
		if new.ForeignKey != nil {
			stmts = append(stmts, utils.NewSQLBuilder().
				Alter("TABLE").Raw(qualified).Raw("ADD CONSTRAINT").
				Name(fmt.Sprintf("%s_%s_fkey", table, new.Name)).
				Raw(fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)", new.Name, new.ForeignKey.RefTable, new.ForeignKey.RefColumn)).
				String())
		} else {
			stmts = append(stmts, utils.NewSQLBuilder().
				Alter("TABLE").Raw(qualified).Raw("DROP CONSTRAINT IF EXISTS").
				Name(fmt.Sprintf("%s_%s_fkey", table, old.Name)).String())
		}
	}

	return stmts
}

// renderColumnDef renders a single column's definition for use inside an
// ADD COLUMN clause, reusing decltable's own column rendering so ADD COLUMN
// output always matches what a fresh CREATE TABLE would produce.
func renderColumnDef(c decltable.Column) string {
	return decltable.RenderColumnDefinition(c)
}
