// Package differ implements the differ (§4.4): it computes file- and
// statement-level changes between the last recorded MigrationSnapshot and
// the current ordered list of parsed source files.
//
// Grounded on housekeeper's pkg/migrator/snapshot.go's set-difference
// approach to detecting added/removed/modified migration snapshots between
// two points in history; here the same shape (union of keys, set
// difference, intersection comparison) is applied to source files against
// a single stored snapshot instead of two migration-history points.
package differ

import (
	"slices"

	"sqlsync.dev/sqlsync/pkg/directive"
	"sqlsync.dev/sqlsync/pkg/splitstmt"
	"sqlsync.dev/sqlsync/pkg/sqlfile"
	"sqlsync.dev/sqlsync/pkg/statestore"
)

// ChangeTag classifies a FileChange.
type ChangeTag int

const (
	Added ChangeTag = iota
	Modified
	Deleted
)

func (t ChangeTag) String() string {
	switch t {
	case Added:
		return "Added"
	case Modified:
		return "Modified"
	case Deleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// StatementChangeTag classifies a StatementChange. Split-statement diffing
// never produces a Modified bucket, per §4.4: renames are impossible
// without a stable identity, so a changed statement shows up as one
// deletion plus one addition.
type StatementChangeTag int

const (
	StatementAdded StatementChangeTag = iota
	StatementDeleted
)

// StatementChange is a single added or deleted block within a
// SplitStatements file modification.
type StatementChange struct {
	Tag       StatementChangeTag
	Checksum  string
	Statement string
}

// FileChange is a single file-level change (§3's FileChange variant).
type FileChange struct {
	Tag  ChangeTag
	Path string

	// Previous is set for Modified and Deleted; for Deleted it is
	// reconstructed from the stored snapshot, since original text is never
	// persisted.
	Previous *sqlfile.ParsedFile
	// Current is set for Added and Modified.
	Current *sqlfile.ParsedFile

	// StatementChanges is populated only for Modified SplitStatements
	// files.
	StatementChanges []StatementChange
}

// Diff is the full set of file changes computed by Compute, in emission
// order: additions (path ascending), then modifications (path ascending),
// then deletions (path ascending).
type Diff struct {
	FileChanges []FileChange
}

// Empty reports whether the diff contains no changes at all.
func (d *Diff) Empty() bool {
	return d == nil || len(d.FileChanges) == 0
}

// Compute diffs snapshot (the last recorded MigrationSnapshot, or an empty
// one for the initial run) against current, the current ordered list of
// parsed files. Compute is pure: identical inputs always produce an
// identical Diff.
func Compute(snapshot *statestore.MigrationSnapshot, current []*sqlfile.ParsedFile) *Diff {
	if snapshot == nil {
		snapshot = statestore.NewSnapshot()
	}

	currByPath := make(map[string]*sqlfile.ParsedFile, len(current))
	for _, pf := range current {
		currByPath[pf.Path] = pf
	}

	prevPaths := snapshot.Paths()
	prevSet := make(map[string]struct{}, len(prevPaths))
	for _, p := range prevPaths {
		prevSet[p] = struct{}{}
	}

	var added, modified, deleted []FileChange

	currPaths := make([]string, 0, len(current))
	for _, pf := range current {
		currPaths = append(currPaths, pf.Path)
	}
	slices.Sort(currPaths)

	for _, path := range currPaths {
		if _, ok := prevSet[path]; !ok {
			added = append(added, FileChange{Tag: Added, Path: path, Current: currByPath[path]})
		}
	}

	for _, path := range prevPaths {
		if _, ok := currByPath[path]; !ok {
			deleted = append(deleted, FileChange{
				Tag:      Deleted,
				Path:     path,
				Previous: reconstruct(snapshot, path),
			})
		}
	}

	for _, path := range currPaths {
		if _, ok := prevSet[path]; !ok {
			continue
		}
		prev := reconstruct(snapshot, path)
		curr := currByPath[path]
		change, changed := compareOne(path, prev, curr)
		if changed {
			modified = append(modified, change)
		}
	}

	all := make([]FileChange, 0, len(added)+len(modified)+len(deleted))
	all = append(all, added...)
	all = append(all, modified...)
	all = append(all, deleted...)

	return &Diff{FileChanges: all}
}

// compareOne compares the previous and current parsed state of a single
// path present in both, per §4.4's per-tag comparison rules.
func compareOne(path string, prev, curr *sqlfile.ParsedFile) (FileChange, bool) {
	if prev.Type != curr.Type {
		// A variant change is a full-replacement modification.
		return FileChange{Tag: Modified, Path: path, Previous: prev, Current: curr}, true
	}

	switch curr.Type {
	case directive.DeclarativeTable:
		if prev.Table.Equal(curr.Table) {
			return FileChange{}, false
		}
		return FileChange{Tag: Modified, Path: path, Previous: prev, Current: curr}, true

	case directive.SplitStatements:
		changes := diffSplitStatements(prev.Split, curr.Split)
		if len(changes) == 0 {
			return FileChange{}, false
		}
		return FileChange{Tag: Modified, Path: path, Previous: prev, Current: curr, StatementChanges: changes}, true

	default: // FileContent
		if prev.Checksum == curr.Checksum {
			return FileChange{}, false
		}
		return FileChange{Tag: Modified, Path: path, Previous: prev, Current: curr}, true
	}
}

// diffSplitStatements computes the set difference between two
// SplitStatements parses. Added-bucket order follows current file order;
// deleted-bucket order follows the previous (snapshot) file order.
func diffSplitStatements(prev, curr *splitstmt.Parsed) []StatementChange {
	prevSet := make(map[string]bool)
	if prev != nil {
		for _, c := range prev.Checksums() {
			prevSet[c] = true
		}
	}
	currSet := make(map[string]bool)
	if curr != nil {
		for _, c := range curr.Checksums() {
			currSet[c] = true
		}
	}

	var changes []StatementChange
	if curr != nil {
		for _, s := range curr.Statements {
			if !prevSet[s.Checksum] {
				changes = append(changes, StatementChange{Tag: StatementAdded, Checksum: s.Checksum, Statement: s.Text})
			}
		}
	}
	if prev != nil {
		for _, s := range prev.Statements {
			if !currSet[s.Checksum] {
				changes = append(changes, StatementChange{Tag: StatementDeleted, Checksum: s.Checksum, Statement: s.Text})
			}
		}
	}
	return changes
}

// reconstruct builds the best-effort ParsedFile for path from a stored
// snapshot: there is no original text to recover, so only the structural
// payload needed for diffing and rendering is populated.
func reconstruct(snapshot *statestore.MigrationSnapshot, path string) *sqlfile.ParsedFile {
	if table, ok := snapshot.DeclarativeTables[path]; ok {
		return &sqlfile.ParsedFile{Path: path, Type: directive.DeclarativeTable, Table: table}
	}
	if checksums, ok := snapshot.SplitStatements[path]; ok {
		parsed := &splitstmt.Parsed{}
		for _, c := range checksums {
			parsed.Statements = append(parsed.Statements, splitstmt.Statement{Checksum: c})
		}
		return &sqlfile.ParsedFile{Path: path, Type: directive.SplitStatements, Split: parsed}
	}
	if fc, ok := snapshot.FileContentChecksums[path]; ok {
		return &sqlfile.ParsedFile{Path: path, Type: directive.FileContent, Checksum: fc.Checksum}
	}
	return &sqlfile.ParsedFile{Path: path, Type: directive.FileContent}
}
