// Package sqlfile implements the ParsedFile envelope (§3): it classifies a
// source file via pkg/directive, dispatches to the matching parser
// (pkg/decltable, pkg/splitstmt, or plain content), and carries the common
// envelope fields every variant shares.
//
// Grounded on housekeeper's pkg/project/schema.go, which is the
// teacher's single point of file-kind dispatch; here the dispatch is a
// three-way switch over pkg/directive's classification instead of the
// teacher's single import-vs-plain distinction.
package sqlfile

import (
	"github.com/pkg/errors"
	"sqlsync.dev/sqlsync/pkg/checksum"
	"sqlsync.dev/sqlsync/pkg/decltable"
	"sqlsync.dev/sqlsync/pkg/directive"
	"sqlsync.dev/sqlsync/pkg/normalize"
	"sqlsync.dev/sqlsync/pkg/splitstmt"
)

// ParsedFile is the common envelope carried by every file-type variant,
// plus the variant-specific payload (at most one of Table/Split is set).
type ParsedFile struct {
	// Path is the project-relative, forward-slash source path.
	Path string
	// Type is the file's classified parser variant.
	Type directive.FileType
	// Critical records the `critical` annotation, if present.
	Critical bool

	// Original is the file's raw text, unmodified.
	Original string
	// Cleaned is Original with non-directive comments and blank lines
	// stripped.
	Cleaned string
	// Stripped is Cleaned with all whitespace removed; checksum input only.
	Stripped string
	// Checksum is the content hash of Stripped.
	Checksum string

	// Table is set when Type is DeclarativeTable.
	Table *decltable.TableDefinition
	// Split is set when Type is SplitStatements.
	Split *splitstmt.Parsed
}

// Parse classifies and parses the file at relpath whose content is text.
// relpath is expected to already be project-relative with forward slashes;
// callers resolve filesystem paths to that form before calling Parse.
func Parse(relpath, text string) (*ParsedFile, error) {
	classification, err := directive.Classify(text)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", relpath)
	}

	cleaned := normalize.StripComments(normalize.Directives(text))
	stripped := normalize.StripWhitespace(cleaned)

	pf := &ParsedFile{
		Path:     relpath,
		Type:     classification.Type,
		Critical: classification.Critical,
		Original: text,
		Cleaned:  cleaned,
		Stripped: stripped,
		Checksum: checksum.Hash(stripped),
	}

	switch classification.Type {
	case directive.DeclarativeTable:
		table, err := decltable.Parse(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", relpath)
		}
		pf.Table = table
	case directive.SplitStatements:
		split, err := splitstmt.Parse(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", relpath)
		}
		pf.Split = split
	}

	return pf, nil
}
