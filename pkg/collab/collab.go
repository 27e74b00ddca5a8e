// Package collab implements the collaboration manager (§4.9): it
// reconciles the on-disk migrations directory against the loaded state and
// classifies conflicts when a migration pulled from another developer
// touches a file the local tree has since modified.
//
// Grounded on housekeeper's pkg/migrator/revision.go's comparison of
// a migration directory's contents against recorded execution history to
// classify pending vs applied migrations; here the same "directory vs.
// recorded state" set comparison classifies new-on-disk vs
// missing-on-disk migrations instead of pending vs applied ones.
package collab

import (
	"bufio"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"sqlsync.dev/sqlsync/pkg/statestore"
)

// ErrNewMigrations is returned by callers that require operator
// confirmation before proceeding past new-on-disk migrations (§4.9: "on
// new_migrations only, it warns and requests confirmation").
var ErrNewMigrations = errors.New("new migrations pulled from another developer were found")

// Report is the result of reconciling the migrations directory against
// the state.
type Report struct {
	// NewMigrations are migration filenames present on disk whose key is
	// missing from the loaded state.
	NewMigrations []string
	// RemovedMigrations are state keys with no corresponding file on disk.
	RemovedMigrations []string
	// Conflicts is the subset of NewMigrations whose applied_changes
	// intersect the locally modified path set.
	Conflicts []string
}

// HasConflicts reports whether any conflict was detected.
func (r *Report) HasConflicts() bool {
	return r != nil && len(r.Conflicts) > 0
}

// Reconcile computes a Report from the migrations present on disk, the
// loaded state, and the content of each new-on-disk migration (needed to
// recover its applied_changes, since a migration missing from state has no
// stored snapshot). locallyModified is the set of source paths that differ
// between the state's last known snapshot and the current file tree.
func Reconcile(diskMigrations []string, state *statestore.State, newMigrationContent map[string]string, locallyModified map[string]bool) *Report {
	knownNames := make(map[string]struct{})
	for _, name := range state.Names() {
		knownNames[name] = struct{}{}
	}
	diskSet := make(map[string]struct{}, len(diskMigrations))
	for _, name := range diskMigrations {
		diskSet[name] = struct{}{}
	}

	report := &Report{}

	sortedDisk := append([]string(nil), diskMigrations...)
	slices.Sort(sortedDisk)
	for _, name := range sortedDisk {
		if _, ok := knownNames[name]; !ok {
			report.NewMigrations = append(report.NewMigrations, name)
		}
	}

	for _, name := range state.Names() {
		if _, ok := diskSet[name]; !ok {
			report.RemovedMigrations = append(report.RemovedMigrations, name)
		}
	}

	for _, name := range report.NewMigrations {
		content, ok := newMigrationContent[name]
		if !ok {
			continue
		}
		for _, path := range ExtractAppliedChanges(content) {
			if locallyModified[path] {
				report.Conflicts = append(report.Conflicts, name)
				break
			}
		}
	}

	return report
}

// ExtractAppliedChanges parses a rendered migration's header comments
// (§4.6's "Added File:"/"Modified File:"/"Deleted File:" markers) and
// returns the set of source paths that migration touched, in the order
// they appear.
func ExtractAppliedChanges(migrationSQL string) []string {
	var paths []string
	scanner := bufio.NewScanner(strings.NewReader(migrationSQL))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		for _, marker := range []string{"-- Added File:", "-- Modified File:", "-- Deleted File:"} {
			if strings.HasPrefix(line, marker) {
				path := strings.TrimSpace(strings.TrimPrefix(line, marker))
				paths = append(paths, path)
			}
		}
	}
	return paths
}
