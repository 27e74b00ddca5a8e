// Status classification: which migrations on disk have been marked applied
// locally versus which are still pending.
//
// Grounded on housekeeper's pkg/migrator/revision.go's
// RevisionSet.GetPending/GetCompleted, which partition a migration set
// against a recorded execution history; here the recorded history is the
// local applied-migration ledger rather than a ClickHouse `revisions`
// table; SUPPLEMENTED FEATURE, since the `status` subcommand (§6) needs
// exactly this partition and the source tool keeps an equivalent view.
package migration

import "slices"

// Status is the classification of on-disk migration filenames against the
// applied ledger.
type Status struct {
	Applied []string
	Pending []string
}

// ComputeStatus partitions diskMigrations (every migration filename
// present in the migrations directory) into Applied and Pending according
// to ledger. Both lists preserve diskMigrations' relative order.
func ComputeStatus(ledger *Ledger, diskMigrations []string) Status {
	var status Status
	for _, name := range diskMigrations {
		if ledger.IsApplied(name) {
			status.Applied = append(status.Applied, name)
		} else {
			status.Pending = append(status.Pending, name)
		}
	}
	return status
}

// SortedDiskMigrations returns names sorted ascending (lexicographic,
// which equals chronological for valid migration filenames).
func SortedDiskMigrations(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	slices.Sort(out)
	return out
}
