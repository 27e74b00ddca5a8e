// Package splitstmt implements the split-statement parser: it extracts
// named statement blocks delimited by `-- sqlsync: startStatement` /
// `-- sqlsync: endStatement` markers and keys each by the checksum of its
// whitespace-stripped content.
//
// Grounded on the line-walking capture-buffer pattern in
// housekeeper's pkg/project/schema.go (`compileSchema` scans lines
// looking for directive comments and accumulates content between them);
// here the accumulation is keyed by a content hash rather than assembled
// into a single output, and the capture is bounded by explicit
// start/end markers instead of running to end of file.
package splitstmt

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"
	"sqlsync.dev/sqlsync/pkg/checksum"
	"sqlsync.dev/sqlsync/pkg/normalize"
)

// ErrMissingMarkers is returned when a splitStatements file contains no
// startStatement/endStatement markers at all.
var ErrMissingMarkers = errors.New("splitStatements file has no startStatement/endStatement markers")

// ErrUnclosed is returned when a startStatement marker has no matching
// endStatement before EOF.
var ErrUnclosed = errors.New("startStatement without matching endStatement")

// ErrDuplicateChecksum is returned when two statement blocks in the same
// file hash to the same checksum.
var ErrDuplicateChecksum = errors.New("duplicate statement checksum")

// Statement is a single captured block, in file order.
type Statement struct {
	// Checksum is the SHA-256 hex digest of the block's whitespace-stripped
	// text, used as its stable identity across parses.
	Checksum string
	// Text is the raw captured block text, lines as they appeared in the
	// source file between the markers.
	Text string
}

// Parsed is the result of parsing a splitStatements file: an ordered
// sequence of statement blocks, insertion order matching file order.
type Parsed struct {
	Statements []Statement
}

// Lookup returns the statement with the given checksum, if present.
func (p *Parsed) Lookup(checksum string) (Statement, bool) {
	for _, s := range p.Statements {
		if s.Checksum == checksum {
			return s, true
		}
	}
	return Statement{}, false
}

// Checksums returns the parsed file's statement checksums in file order.
func (p *Parsed) Checksums() []string {
	out := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		out[i] = s.Checksum
	}
	return out
}

const (
	markerStart = "startStatement"
	markerEnd   = "endStatement"
)

// Parse walks text line by line, opening a capture buffer on a
// startStatement marker and closing it on endStatement, hashing the
// whitespace-stripped buffer and inserting it into the ordered result.
func Parse(text string) (*Parsed, error) {
	result := &Parsed{}

	var (
		capturing bool
		lines     []string
		seen      = make(map[string]bool)
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		switch marker(line) {
		case markerStart:
			capturing = true
			lines = nil
			continue
		case markerEnd:
			if !capturing {
				continue
			}
			block := strings.Join(lines, "\n")
			sum := checksum.Hash(normalize.StripWhitespace(block))
			if seen[sum] {
				return nil, errors.Wrapf(ErrDuplicateChecksum, "checksum %s", sum)
			}
			seen[sum] = true
			result.Statements = append(result.Statements, Statement{Checksum: sum, Text: block})
			capturing = false
			continue
		}

		if capturing {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan source text")
	}

	if capturing {
		return nil, ErrUnclosed
	}

	if len(result.Statements) == 0 {
		return nil, ErrMissingMarkers
	}

	return result, nil
}

// marker returns the directive keyword on line if it is a
// startStatement/endStatement marker, or "" otherwise. line is first
// canonicalized so irregular spacing around "sqlsync" and ":" is tolerated,
// matching pkg/directive's placement rules.
func marker(line string) string {
	canonical := normalize.Directives(line)
	if !normalize.IsDirectiveLine(canonical) {
		return ""
	}
	fields := strings.Fields(canonical)
	if len(fields) < 3 {
		return ""
	}
	return fields[2]
}
