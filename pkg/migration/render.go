// Render implements the migration-content generator (§4.6): it renders a
// computed differ.Diff into the human-readable, directive-preserving
// `.sql` migration body with the conventional headers.
//
// Grounded on housekeeper's pkg/migrator/checkpoint.go's
// comment-header rendering (a fixed-format `-- housekeeper:checkpoint`
// block followed by accumulated SQL content); here the same
// "fixed comment headers followed by SQL body" shape renders per-file
// change sections instead of a single consolidated checkpoint.
package migration

import (
	"fmt"
	"strings"
	"time"

	"sqlsync.dev/sqlsync/pkg/coldiff"
	"sqlsync.dev/sqlsync/pkg/differ"
	"sqlsync.dev/sqlsync/pkg/directive"
	"sqlsync.dev/sqlsync/pkg/sqlfile"
)

const isoUTCLayout = "2006-01-02T15:04:05Z07:00"

// Render builds the migration file body for diff, with name and
// generatedAt (UTC) interpolated into the header. name is the
// human-provided migration name, not the sanitized filename.
func Render(diff *differ.Diff, name string, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "-- SQLSync Migration: %s\n", name)
	fmt.Fprintf(&b, "-- Generated: %s\n", generatedAt.UTC().Format(isoUTCLayout))

	for _, change := range diff.FileChanges {
		b.WriteString("\n")
		switch change.Tag {
		case differ.Added:
			renderAdded(&b, change)
		case differ.Modified:
			renderModified(&b, change)
		case differ.Deleted:
			renderDeleted(&b, change)
		}
	}

	return b.String()
}

func renderAdded(b *strings.Builder, change differ.FileChange) {
	fmt.Fprintf(b, "-- Added File: %s\n", change.Path)
	b.WriteString("-- NOTE: File content has changed. Including complete content:\n")
	b.WriteString(renderContent(change.Current))
}

func renderDeleted(b *strings.Builder, change differ.FileChange) {
	fmt.Fprintf(b, "-- Deleted File: %s\n", change.Path)
	b.WriteString("-- NOTE: DROP statements are NOT automatically generated.\n")
}

func renderModified(b *strings.Builder, change differ.FileChange) {
	fmt.Fprintf(b, "-- Modified File: %s\n", change.Path)

	if change.Previous != nil && change.Current != nil &&
		change.Previous.Type == directive.DeclarativeTable && change.Current.Type == directive.DeclarativeTable {
		renderDeclarativeModification(b, change)
		return
	}

	b.WriteString("-- NOTE: File content has changed. Including complete content:\n")
	b.WriteString(renderContent(change.Current))
}

func renderDeclarativeModification(b *strings.Builder, change differ.FileChange) {
	b.WriteString("-- NOTE: File is declarative. Generated ALTER TABLE statements for incremental changes.\n")

	result := coldiff.Diff(change.Previous.Table, change.Current.Table)

	if result.Renamed && len(result.Statements) > 0 {
		b.WriteString(result.Statements[0])
		b.WriteString("\n")
	}

	if len(result.Added) > 0 {
		b.WriteString("-- ADDED COLUMNS\n")
		for _, stmt := range statementsFor(result, "added") {
			b.WriteString(stmt)
			b.WriteString("\n")
		}
	}
	if len(result.Modified) > 0 {
		b.WriteString("-- MODIFIED COLUMNS\n")
		for _, m := range result.Modified {
			for _, stmt := range m.Statements {
				b.WriteString(stmt)
				b.WriteString("\n")
			}
		}
	}
	if len(result.Dropped) > 0 {
		b.WriteString("-- DROPPED COLUMNS\n")
		for _, stmt := range statementsFor(result, "dropped") {
			b.WriteString(stmt)
			b.WriteString("\n")
		}
	}
}

// statementsFor extracts the ADD COLUMN or DROP COLUMN statements from
// result.Statements for the requested bucket, relying on coldiff's fixed
// emission order (ADDs, then ALTERs, then DROPs).
func statementsFor(result coldiff.Result, bucket string) []string {
	offset := 0
	if result.Renamed {
		offset = 1
	}
	switch bucket {
	case "added":
		return result.Statements[offset : offset+len(result.Added)]
	case "dropped":
		start := len(result.Statements) - len(result.Dropped)
		return result.Statements[start:]
	default:
		return nil
	}
}

func renderContent(pf *sqlfile.ParsedFile) string {
	content := pf.Cleaned
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content
}
