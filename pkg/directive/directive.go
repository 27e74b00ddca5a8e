// Package directive scans a source file's leading comment block for
// `-- sqlsync:` directives and classifies the file's parser variant.
//
// Grounded on the directive-line scanning in
// housekeeper's pkg/project/schema.go (`compileSchema`'s
// `-- housekeeper:import` recognition), generalized from a single import
// directive to the sqlsync directive family and to leading-block placement
// rules the import compiler did not need to enforce.
package directive

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"
)

// FileType identifies which parser variant a source file requires.
type FileType int

const (
	// FileContent is the default: the whole file is treated as opaque text.
	FileContent FileType = iota
	// DeclarativeTable marks a file as a single authoritative CREATE TABLE.
	DeclarativeTable
	// SplitStatements marks a file as a sequence of delimited SQL blocks.
	SplitStatements
)

func (t FileType) String() string {
	switch t {
	case DeclarativeTable:
		return "declarativeTable"
	case SplitStatements:
		return "splitStatements"
	default:
		return "fileContent"
	}
}

const (
	keywordDeclarativeTable = "declarativeTable"
	keywordSplitStatements  = "splitStatements"
	keywordStartStatement   = "startStatement"
	keywordEndStatement     = "endStatement"
	keywordCritical         = "critical"
)

// ErrDirectivePlacement is returned when a type directive appears outside
// the file's leading comment block, or more than once.
var ErrDirectivePlacement = errors.New("directive placement invalid")

// Classification is the result of scanning a file for directives.
type Classification struct {
	// Type is the file's classified parser variant.
	Type FileType
	// Critical records whether the file carries the `critical` annotation.
	// It has no semantic effect on diffing; it is copied into migration
	// metadata verbatim.
	Critical bool
}

// Classify scans text's leading comment block for a type directive and
// returns the file's classification. A type directive appearing after the
// first non-comment, non-blank line, or a second type directive anywhere,
// is a fatal DirectivePlacement error wrapping ErrDirectivePlacement.
func Classify(text string) (Classification, error) {
	var (
		result        Classification
		typeFound     bool
		inLeadingBlock = true
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}

		keyword, ok := directiveKeyword(line)
		if !ok {
			if strings.HasPrefix(trimmed, "--") {
				// Non-directive comment: does not close the leading block.
				continue
			}
			inLeadingBlock = false
			continue
		}

		switch keyword {
		case keywordDeclarativeTable, keywordSplitStatements:
			if !inLeadingBlock {
				return Classification{}, errors.Wrapf(ErrDirectivePlacement,
					"line %d: %q directive must appear in the file's leading comment block", lineNo, keyword)
			}
			if typeFound {
				return Classification{}, errors.Wrapf(ErrDirectivePlacement,
					"line %d: duplicate type directive %q", lineNo, keyword)
			}
			typeFound = true
			if keyword == keywordDeclarativeTable {
				result.Type = DeclarativeTable
			} else {
				result.Type = SplitStatements
			}
		case keywordCritical:
			result.Critical = true
		case keywordStartStatement, keywordEndStatement:
			// Recognized but handled by the split-statement parser itself.
		}
	}

	if err := scanner.Err(); err != nil {
		return Classification{}, errors.Wrap(err, "failed to scan source text")
	}

	return result, nil
}

// directiveKeyword extracts the first whitespace-delimited token following
// a `-- sqlsync:` prefix on line, tolerating irregular spacing around the
// colon. It returns false if line is not a sqlsync directive comment.
func directiveKeyword(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "--") {
		return "", false
	}

	rest := strings.TrimLeft(trimmed[2:], " \t")
	const prefix = "sqlsync"
	if !strings.HasPrefix(rest, prefix) {
		return "", false
	}
	rest = rest[len(prefix):]

	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}
	rest = strings.TrimLeft(rest[1:], " \t")

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}
