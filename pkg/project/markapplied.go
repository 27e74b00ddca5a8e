package project

import "sqlsync.dev/sqlsync/pkg/migration"

// MarkAppliedAll is the `mark-applied all` sentinel: every pending
// on-disk migration is appended to the ledger.
const MarkAppliedAll = "all"

// MarkApplied appends name (or every pending migration, when name is
// MarkAppliedAll) to the applied-migration ledger, recomputing its
// tamper-evidence chain file. Re-marking an already-applied migration is a
// no-op (SUPPLEMENTED FEATURE; §6 names the subcommand without detailing
// its semantics beyond appending a filename).
func (p *Project) MarkApplied(name string) ([]string, error) {
	if err := p.requireConfig(); err != nil {
		return nil, err
	}

	ledger, err := migration.LoadLedgerFile(p.LedgerPath())
	if err != nil {
		return nil, err
	}

	var names []string
	if name == MarkAppliedAll {
		disk, err := p.DiskMigrations()
		if err != nil {
			return nil, err
		}
		status := migration.ComputeStatus(ledger, disk)
		names = status.Pending
	} else {
		names = []string{name}
	}

	for _, n := range names {
		ledger.Append(n)
	}

	if err := ledger.SaveFile(p.LedgerPath()); err != nil {
		return nil, err
	}
	if err := ledger.SaveChainFile(p.LedgerChainPath()); err != nil {
		return nil, err
	}

	return names, nil
}
