package project

import "sqlsync.dev/sqlsync/pkg/migration"

// Status reports which on-disk migrations are applied versus pending
// locally, per the SUPPLEMENTED `status` subcommand (SPEC_FULL.md).
func (p *Project) Status() (migration.Status, error) {
	if err := p.requireConfig(); err != nil {
		return migration.Status{}, err
	}

	disk, err := p.DiskMigrations()
	if err != nil {
		return migration.Status{}, err
	}

	ledger, err := migration.LoadLedgerFile(p.LedgerPath())
	if err != nil {
		return migration.Status{}, err
	}

	return migration.ComputeStatus(ledger, disk), nil
}
