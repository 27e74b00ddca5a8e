// Package decltable implements the declarative-table parser: it extracts
// schema, table name, and an ordered column list from a file whose sole
// structural statement is a `CREATE TABLE`.
//
// Grounded on housekeeper's pkg/schema/table.go's compareTables /
// compareColumns (the column-field model: name, data type, nullability,
// default, primary key, unique, foreign key, check constraint) and on
// housekeeper's pkg/parser/parser.go's
// lexer construction, adapted from ClickHouse DDL to the narrow Postgres
// CREATE TABLE grammar this spec requires.
package decltable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"sqlsync.dev/sqlsync/pkg/compare"
	"sqlsync.dev/sqlsync/pkg/consts"
	"sqlsync.dev/sqlsync/pkg/utils"
)

// ErrParseCreateTable is returned when a declarativeTable file does not
// contain a single parseable CREATE TABLE statement.
var ErrParseCreateTable = errors.New("declarative table file is not a single parseable CREATE TABLE")

type (
	// ForeignKey describes a REFERENCES clause on a column.
	ForeignKey struct {
		RefTable  string `json:"ref_table"`
		RefColumn string `json:"ref_column"`
		OnDelete  string `json:"on_delete,omitempty"`
		OnUpdate  string `json:"on_update,omitempty"`
	}

	// Column is a single column definition within a declarative table.
	Column struct {
		Name              string      `json:"name"`
		DataType          string      `json:"data_type"`
		Nullable          bool        `json:"nullable"`
		DefaultExpression string      `json:"default_expression,omitempty"`
		HasDefault        bool        `json:"has_default"`
		PrimaryKey        bool        `json:"primary_key"`
		Unique            bool        `json:"unique"`
		ForeignKey        *ForeignKey `json:"foreign_key,omitempty"`
		CheckConstraint   string      `json:"check_constraint,omitempty"`
	}

	// TableDefinition is the parsed, structural representation of a
	// declarative table file.
	TableDefinition struct {
		Schema  string   `json:"schema"`
		Table   string   `json:"table_name"`
		Columns []Column `json:"columns"`
	}
)

// Equal reports whether fk and other describe the same foreign key.
func (fk *ForeignKey) Equal(other *ForeignKey) bool {
	return compare.PointersWithEqual(fk, other, func(a, b *ForeignKey) bool {
		return a.RefTable == b.RefTable &&
			a.RefColumn == b.RefColumn &&
			a.OnDelete == b.OnDelete &&
			a.OnUpdate == b.OnUpdate
	})
}

// Equal reports whether c and other match on every field; DEFAULT
// expressions are compared with DefaultExpressionsEqual, so cosmetic
// variants such as TRUE/true or 0/0.0 count as equal. Column renames are never inferred; equality is purely name-keyed
// field comparison, per the column differ's no-rename-detection rule.
func (c Column) Equal(other Column) bool {
	return c.Name == other.Name &&
		c.DataType == other.DataType &&
		c.Nullable == other.Nullable &&
		c.HasDefault == other.HasDefault &&
		DefaultExpressionsEqual(c.DefaultExpression, other.DefaultExpression) &&
		c.PrimaryKey == other.PrimaryKey &&
		c.Unique == other.Unique &&
		c.CheckConstraint == other.CheckConstraint &&
		c.ForeignKey.Equal(other.ForeignKey)
}

// DefaultExpressionsEqual compares two raw DEFAULT expression tokens,
// tolerating the case and format drift a hand-written schema and its
// previously recorded snapshot can pick up for the same numeric or
// boolean literal ("TRUE" vs "true", "0" vs "0.0"), so a cosmetic rewrite
// doesn't register as a column change.
func DefaultExpressionsEqual(a, b string) bool {
	if a == b {
		return true
	}
	if utils.IsBooleanValue(a) && utils.IsBooleanValue(b) {
		return strings.EqualFold(a, b)
	}
	if utils.IsNumericValue(a) && utils.IsNumericValue(b) {
		aVal, errA := strconv.ParseFloat(a, 64)
		bVal, errB := strconv.ParseFloat(b, 64)
		return errA == nil && errB == nil && aVal == bVal
	}
	return false
}

// Equal reports whether t and other describe the same table: same schema,
// table name, and column sequence (order-sensitive, per §3).
func (t *TableDefinition) Equal(other *TableDefinition) bool {
	return compare.PointersWithEqual(t, other, func(a, b *TableDefinition) bool {
		if a.Schema != b.Schema || a.Table != b.Table {
			return false
		}
		return compare.Slices(a.Columns, b.Columns, Column.Equal)
	})
}

// EqualIgnoringName reports whether t and other have identical column
// sequences regardless of schema/table name; used to detect table renames.
func (t *TableDefinition) EqualIgnoringName(other *TableDefinition) bool {
	if t == nil || other == nil {
		return t == other
	}
	return compare.Slices(t.Columns, other.Columns, Column.Equal)
}

var stopKeywords = map[string]bool{
	"NOT": true, "NULL": true, "DEFAULT": true, "PRIMARY": true,
	"UNIQUE": true, "REFERENCES": true, "CHECK": true,
}

// Parse extracts the TableDefinition from text, which must contain exactly
// one CREATE TABLE statement as its sole structural content.
func Parse(text string) (*TableDefinition, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, errors.Wrap(err, "failed to tokenize declarative table source")
	}

	p := &tableParser{tokens: tokens}
	return p.parseCreateTable()
}

type tableParser struct {
	tokens []lexer.Token
	pos    int
}

func (p *tableParser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *tableParser) peekValue() string {
	tok, ok := p.peek()
	if !ok {
		return ""
	}
	return tok.Value
}

func (p *tableParser) peekUpper() string {
	return strings.ToUpper(p.peekValue())
}

func (p *tableParser) next() (lexer.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *tableParser) expectUpper(value string) bool {
	if p.peekUpper() != value {
		return false
	}
	p.pos++
	return true
}

func (p *tableParser) parseCreateTable() (*TableDefinition, error) {
	if !p.expectUpper("CREATE") || !p.expectUpper("TABLE") {
		return nil, errors.Wrap(ErrParseCreateTable, "expected CREATE TABLE")
	}

	schema, table, ok := p.parseQualifiedName()
	if !ok {
		return nil, errors.Wrap(ErrParseCreateTable, "expected table name")
	}
	if schema == "" {
		schema = consts.DefaultSchema
	}

	if p.peekValue() != "(" {
		return nil, errors.Wrap(ErrParseCreateTable, "expected '(' after table name")
	}
	p.pos++

	body, err := p.captureBalanced()
	if err != nil {
		return nil, errors.Wrap(ErrParseCreateTable, err.Error())
	}

	// The only remaining significant tokens must be an optional trailing
	// semicolon; anything else means this wasn't the file's sole statement.
	for _, tok := range p.tokens[p.pos:] {
		if tok.Value != ";" {
			return nil, errors.Wrap(ErrParseCreateTable, "unexpected content after CREATE TABLE statement")
		}
	}

	columns, err := parseColumnList(body)
	if err != nil {
		return nil, err
	}

	return &TableDefinition{Schema: schema, Table: table, Columns: columns}, nil
}

// parseQualifiedName reads `ident` or `ident.ident` starting at the current
// position.
func (p *tableParser) parseQualifiedName() (schema, name string, ok bool) {
	tok, has := p.next()
	if !has || !isIdent(tok) {
		return "", "", false
	}
	first := tok.Value

	if p.peekValue() == "." {
		p.pos++
		tok, has = p.next()
		if !has || !isIdent(tok) {
			return "", "", false
		}
		return first, tok.Value, true
	}

	return "", first, true
}

// captureBalanced returns the tokens inside the parenthesis opened just
// before the parser's current position, consuming through the matching
// close paren.
func (p *tableParser) captureBalanced() ([]lexer.Token, error) {
	depth := 1
	start := p.pos

	for p.pos < len(p.tokens) {
		switch p.tokens[p.pos].Value {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				body := p.tokens[start:p.pos]
				p.pos++
				return body, nil
			}
		}
		p.pos++
	}

	return nil, errors.New("unterminated parenthesis in CREATE TABLE body")
}

func isIdent(tok lexer.Token) bool {
	return tok.Value != "" && (tok.Value[0] == '_' || isAlpha(tok.Value[0]))
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// parseColumnList splits body on top-level commas (parenthesis-aware) and
// parses each fragment as either a column definition or a table-level
// constraint, which is skipped.
func parseColumnList(body []lexer.Token) ([]Column, error) {
	var columns []Column

	for _, fragment := range splitTopLevel(body) {
		if len(fragment) == 0 {
			continue
		}
		if isTableLevelConstraint(fragment) {
			continue
		}

		col, err := parseColumn(fragment)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	return columns, nil
}

func isTableLevelConstraint(fragment []lexer.Token) bool {
	switch strings.ToUpper(fragment[0].Value) {
	case "PRIMARY", "UNIQUE", "FOREIGN", "CHECK":
		return true
	default:
		return false
	}
}

// splitTopLevel splits tokens on comma tokens at parenthesis depth zero.
func splitTopLevel(tokens []lexer.Token) [][]lexer.Token {
	var fragments [][]lexer.Token
	var current []lexer.Token
	depth := 0

	for _, tok := range tokens {
		switch tok.Value {
		case "(":
			depth++
		case ")":
			depth--
		case ",":
			if depth == 0 {
				fragments = append(fragments, current)
				current = nil
				continue
			}
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		fragments = append(fragments, current)
	}

	return fragments
}

// parseColumn extracts, in order, the identifier, data-type token(s),
// NOT NULL, DEFAULT <expr>, PRIMARY KEY, UNIQUE, REFERENCES, and CHECK
// clauses from a single column fragment.
func parseColumn(fragment []lexer.Token) (Column, error) {
	if len(fragment) == 0 || !isIdent(fragment[0]) {
		return Column{}, errors.Wrap(ErrParseCreateTable, "expected column name")
	}

	col := Column{Name: fragment[0].Value, Nullable: true}
	i := 1

	// Data type: the type keyword, an optional balanced-paren argument
	// list, and any additional bare-word tokens (e.g. "DOUBLE PRECISION",
	// "TIMESTAMP WITH TIME ZONE") up to the next recognized keyword.
	var typeTokens []lexer.Token
	if i < len(fragment) {
		typeTokens = append(typeTokens, fragment[i])
		i++
	}
	if i < len(fragment) && fragment[i].Value == "(" {
		start := i
		i++
		depth := 1
		for i < len(fragment) && depth > 0 {
			switch fragment[i].Value {
			case "(":
				depth++
			case ")":
				depth--
			}
			i++
		}
		typeTokens = append(typeTokens, fragment[start:i]...)
	}
	for i < len(fragment) && isIdent(fragment[i]) && !stopKeywords[strings.ToUpper(fragment[i].Value)] {
		typeTokens = append(typeTokens, fragment[i])
		i++
	}
	col.DataType = joinTokens(typeTokens)

	for i < len(fragment) {
		kw := strings.ToUpper(fragment[i].Value)
		switch kw {
		case "NOT":
			if i+1 < len(fragment) && strings.ToUpper(fragment[i+1].Value) == "NULL" {
				col.Nullable = false
				i += 2
				continue
			}
			i++
		case "NULL":
			col.Nullable = true
			i++
		case "DEFAULT":
			i++
			start := i
			for i < len(fragment) && !stopKeywords[strings.ToUpper(fragment[i].Value)] {
				i++
			}
			col.HasDefault = true
			col.DefaultExpression = joinTokens(fragment[start:i])
		case "PRIMARY":
			if i+1 < len(fragment) && strings.ToUpper(fragment[i+1].Value) == "KEY" {
				col.PrimaryKey = true
				i += 2
				continue
			}
			i++
		case "UNIQUE":
			col.Unique = true
			i++
		case "REFERENCES":
			i++
			fk, next, err := parseForeignKey(fragment, i)
			if err != nil {
				return Column{}, err
			}
			col.ForeignKey = fk
			i = next
		case "CHECK":
			i++
			if i >= len(fragment) || fragment[i].Value != "(" {
				return Column{}, errors.Wrap(ErrParseCreateTable, "expected '(' after CHECK")
			}
			i++
			start := i
			depth := 1
			for i < len(fragment) && depth > 0 {
				switch fragment[i].Value {
				case "(":
					depth++
				case ")":
					depth--
				}
				if depth > 0 {
					i++
				}
			}
			col.CheckConstraint = joinTokens(fragment[start:i])
			i++
		default:
			i++
		}
	}

	return col, nil
}

func parseForeignKey(fragment []lexer.Token, i int) (*ForeignKey, int, error) {
	if i >= len(fragment) || !isIdent(fragment[i]) {
		return nil, i, errors.Wrap(ErrParseCreateTable, "expected table name after REFERENCES")
	}
	fk := &ForeignKey{RefTable: fragment[i].Value}
	i++

	if i < len(fragment) && fragment[i].Value == "(" {
		i++
		if i < len(fragment) && isIdent(fragment[i]) {
			fk.RefColumn = fragment[i].Value
			i++
		}
		if i < len(fragment) && fragment[i].Value == ")" {
			i++
		}
	}

	for i < len(fragment) {
		kw := strings.ToUpper(fragment[i].Value)
		if kw != "ON" {
			break
		}
		if i+1 >= len(fragment) {
			break
		}
		action := strings.ToUpper(fragment[i+1].Value)
		i += 2
		start := i
		for i < len(fragment) && strings.ToUpper(fragment[i].Value) != "ON" {
			i++
		}
		clause := joinTokens(fragment[start:i])
		switch action {
		case "DELETE":
			fk.OnDelete = clause
		case "UPDATE":
			fk.OnUpdate = clause
		}
	}

	return fk, i, nil
}

// RenderCreateTable renders t as a CREATE TABLE statement, emitting column
// fields in the same fixed order the column parser reads them in.
func RenderCreateTable(t *TableDefinition) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if t.Schema != "" && t.Schema != consts.DefaultSchema {
		b.WriteString(t.Schema)
		b.WriteString(".")
	}
	b.WriteString(t.Table)
	b.WriteString(" (\n")

	for i, col := range t.Columns {
		b.WriteString("  ")
		b.WriteString(RenderColumnDefinition(col))
		if i < len(t.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	b.WriteString(");")
	return b.String()
}

// RenderColumnDefinition renders a single column's definition in the fixed
// field order the column parser reads them in: name, data type, NOT NULL,
// DEFAULT, PRIMARY KEY, UNIQUE, REFERENCES, CHECK. Used both by
// RenderCreateTable and by the column differ's ADD COLUMN statements, so
// the two always agree on column syntax.
func RenderColumnDefinition(col Column) string {
	parts := []string{col.Name, col.DataType}

	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if col.HasDefault {
		parts = append(parts, "DEFAULT", col.DefaultExpression)
	}
	if col.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if col.Unique {
		parts = append(parts, "UNIQUE")
	}
	if col.ForeignKey != nil {
		ref := fmt.Sprintf("REFERENCES %s(%s)", col.ForeignKey.RefTable, col.ForeignKey.RefColumn)
		if col.ForeignKey.OnDelete != "" {
			ref += " ON DELETE " + col.ForeignKey.OnDelete
		}
		if col.ForeignKey.OnUpdate != "" {
			ref += " ON UPDATE " + col.ForeignKey.OnUpdate
		}
		parts = append(parts, ref)
	}
	if col.CheckConstraint != "" {
		parts = append(parts, fmt.Sprintf("CHECK (%s)", col.CheckConstraint))
	}

	return strings.Join(parts, " ")
}

// joinTokens reconstructs readable text from a token run, avoiding spaces
// before closing punctuation or after opening punctuation.
func joinTokens(tokens []lexer.Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			prev := tokens[i-1].Value
			switch {
			case tok.Value == "," || tok.Value == ")" || tok.Value == "." || tok.Value == "(":
			case prev == "(" || prev == "." || prev == ",":
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString(tok.Value)
	}
	return b.String()
}
