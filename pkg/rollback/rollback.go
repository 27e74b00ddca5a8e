// Package rollback implements the rollback planner (§4.10): given a target
// migration name, it enumerates the migrations that must be undone, and
// enforces the protected-migration ("marked") rule.
//
// Grounded on housekeeper's pkg/migrator/checkpoint.go's checkpoint
// concept, which marks a migration as a safe, protected point in history
// that earlier migrations can be pruned up to; here the same "this
// migration may not be disturbed" idea becomes the `marked` protection
// flag a rollback plan must refuse to cross, rather than a consolidation
// boundary for deleting old files.
package rollback

import (
	"slices"

	"github.com/pkg/errors"
)

// ErrProtected is returned when a rollback plan's range includes a marked
// migration.
var ErrProtected = errors.New("rollback range includes a marked migration")

// ErrUnknownTarget is returned when the requested target migration name
// does not exist in the known migration set.
var ErrUnknownTarget = errors.New("unknown rollback target")

// ErrTooManyMarks is returned when a Mark call would exceed maxRollbacks.
var ErrTooManyMarks = errors.New("marking more migrations than the configured maximum simultaneously")

// Entry describes one migration's rollback-relevant status, used by List.
type Entry struct {
	Name    string
	Author  string
	Marked  bool
}

// Plan computes the ordered list of migrations to undo for a rollback to
// target, inclusive: every migration in names with a key greater than or
// equal to target, in descending (most-recent-first) order. names need not
// be pre-sorted. The plan fails with ErrUnknownTarget if target is absent,
// and with ErrProtected if any migration in the range (including target
// itself) is marked.
func Plan(names []string, target string, marked map[string]bool) ([]string, error) {
	sorted := append([]string(nil), names...)
	slices.Sort(sorted)

	idx := slices.Index(sorted, target)
	if idx < 0 {
		return nil, errors.Wrapf(ErrUnknownTarget, "%s", target)
	}

	inRange := sorted[idx:]
	for _, name := range inRange {
		if marked[name] {
			return nil, errors.Wrapf(ErrProtected, "%s", name)
		}
	}

	plan := append([]string(nil), inRange...)
	slices.Reverse(plan)
	return plan, nil
}

// Mark adds names to marked, refusing if doing so would mark more than
// maxRollbacks migrations in this single call. maxRollbacks <= 0 means no
// limit.
func Mark(marked map[string]bool, names []string, maxRollbacks int) error {
	if maxRollbacks > 0 && len(names) > maxRollbacks {
		return errors.Wrapf(ErrTooManyMarks, "marking %d migrations exceeds the configured maximum of %d", len(names), maxRollbacks)
	}
	for _, name := range names {
		marked[name] = true
	}
	return nil
}

// Unmark removes names from marked.
func Unmark(marked map[string]bool, names []string) {
	for _, name := range names {
		delete(marked, name)
	}
}

// List enumerates every migration in names with its protection status and
// author, in ascending chronological order. It does not mutate any state.
func List(names []string, marked map[string]bool, authors map[string]string) []Entry {
	sorted := append([]string(nil), names...)
	slices.Sort(sorted)

	entries := make([]Entry, 0, len(sorted))
	for _, name := range sorted {
		entries = append(entries, Entry{
			Name:   name,
			Author: authors[name],
			Marked: marked[name],
		})
	}
	return entries
}
