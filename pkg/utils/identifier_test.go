package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"sqlsync.dev/sqlsync/pkg/utils"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple identifier",
			input:    "table",
			expected: "table",
		},
		{
			name:     "already quoted identifier is stripped",
			input:    `"table"`,
			expected: "table",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "identifier with special characters",
			input:    "table-name",
			expected: "table-name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.Identifier(tt.input)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestQualifiedName(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		table    string
		expected string
	}{
		{
			name:     "with schema",
			schema:   "analytics",
			table:    "events",
			expected: "analytics.events",
		},
		{
			name:     "without schema",
			schema:   "",
			table:    "events",
			expected: "events",
		},
		{
			name:     "schema with special characters",
			schema:   "my-schema",
			table:    "my_table",
			expected: "my-schema.my_table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.QualifiedName(tt.schema, tt.table)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestIsQuoted(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "quoted identifier", input: `"table"`, expected: true},
		{name: "not quoted", input: "table", expected: false},
		{name: "qualified quoted identifier", input: `"schema"."table"`, expected: false},
		{name: "empty string", input: "", expected: false},
		{name: "single quote", input: `"`, expected: false},
		{name: "mismatched quotes", input: `"table`, expected: false},
		{name: "quotes with content containing quotes", input: `"ta"ble"`, expected: false},
		{name: "just two quotes", input: `""`, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.IsQuoted(tt.input)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "quoted identifier", input: `"table"`, expected: "table"},
		{name: "not quoted", input: "table", expected: "table"},
		{name: "qualified quoted identifier", input: `"schema"."table"`, expected: "schema.table"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.StripQuotes(tt.input)
			require.Equal(t, tt.expected, result)
		})
	}
}
