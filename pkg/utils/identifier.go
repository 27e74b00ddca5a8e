package utils

import "strings"

// Identifier formats a single identifier for use in generated DDL,
// stripping any double quotes it may already carry. Generated statements
// use Postgres's default unquoted identifier form throughout (§4.5's
// qualified name is always the bare `<schema>.<table>`), so a quoted
// input is normalized down to its bare form rather than re-quoted.
//
// Examples:
//   - "table" -> "table"
//   - `"table"` -> "table"
//   - "" -> ""
func Identifier(name string) string {
	return StripQuotes(name)
}

// QualifiedName formats a schema-qualified name (schema.name) unquoted.
// If schema is empty, only the name is returned.
//
// Examples:
//   - ("public", "users") -> "public.users"
//   - ("", "users") -> "users"
func QualifiedName(schema, name string) string {
	if schema != "" {
		return Identifier(schema) + "." + Identifier(name)
	}
	return Identifier(name)
}

// IsQuoted checks if a string is already wrapped in double quotes.
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' && !strings.Contains(s[1:len(s)-1], `"`)
}

// StripQuotes removes double quotes from an identifier if present.
func StripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
