// Package normalize implements the text-normalization rules sqlsync applies
// to source SQL files before classification, parsing, and checksumming.
//
// Grounded on the line-oriented scanning style of
// housekeeper's pkg/project/schema.go (bufio.Scanner, one
// directive-comment prefix recognized per line), adapted from ClickHouse's
// `-- housekeeper:import` directive to sqlsync's `-- sqlsync:` directive
// family.
package normalize

import (
	"bufio"
	"strings"
	"unicode"
)

const directivePrefix = "sqlsync"

// Directives rewrites every line whose trimmed prefix matches
// `--\s*sqlsync\s*:` to exactly `-- sqlsync: <payload>`, with the payload
// right-trimmed. All other lines pass through unchanged, byte-for-byte.
func Directives(text string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		if !first {
			b.WriteByte('\n')
		}
		first = false

		line := scanner.Text()
		if payload, ok := directivePayload(line); ok {
			b.WriteString("-- sqlsync: ")
			b.WriteString(strings.TrimRight(payload, " \t"))
		} else {
			b.WriteString(line)
		}
	}

	return b.String()
}

// directivePayload reports whether the line's trimmed prefix is a sqlsync
// directive comment (`--`, `sqlsync`, `:` with optional whitespace between
// them), and if so returns the text following the colon with its leading
// whitespace removed.
func directivePayload(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "--") {
		return "", false
	}

	rest := strings.TrimLeft(trimmed[2:], " \t")
	if !strings.HasPrefix(rest, directivePrefix) {
		return "", false
	}

	rest = strings.TrimLeft(rest[len(directivePrefix):], " \t")
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}

	return strings.TrimLeft(rest[1:], " \t"), true
}

// IsDirectiveLine reports whether line carries a `-- sqlsync:` directive
// prefix, ignoring leading whitespace.
func IsDirectiveLine(line string) bool {
	_, ok := directivePayload(line)
	return ok
}

// StripComments removes every line whose trimmed prefix is `--`, except
// lines carrying the sqlsync directive prefix. Blank lines produced by a
// removed comment are dropped; non-comment lines and directive lines are
// preserved in order, byte-for-byte.
func StripComments(text string) string {
	var kept []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimLeft(line, " \t")

		if strings.HasPrefix(trimmed, "--") && !IsDirectiveLine(line) {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// StripWhitespace removes every maximal run of Unicode whitespace from
// text. It is used only as checksum input, never for rendering.
func StripWhitespace(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
