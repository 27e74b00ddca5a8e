package project

import (
	"sqlsync.dev/sqlsync/pkg/collab"
	"sqlsync.dev/sqlsync/pkg/migration"
	"sqlsync.dev/sqlsync/pkg/statestore"
)

// SyncReport is the outcome of reconciling the migrations directory, the
// state file, and the applied ledger.
type SyncReport struct {
	// Collab is the collaboration reconciliation report (§4.9): new and
	// removed migrations, and conflicts against locally modified files.
	Collab *collab.Report
	// LedgerTampered is true when the applied ledger's recorded chain
	// hash no longer matches its recomputed chain (§5: crash or tamper
	// recovery).
	LedgerTampered bool
}

// Sync reconciles the on-disk migrations directory against the state file
// and applied ledger, surfacing drift (§5: "a crash between steps leaves
// an orphan migration that sync can reconcile") without mutating
// anything.
func (p *Project) Sync() (*SyncReport, error) {
	if err := p.requireConfig(); err != nil {
		return nil, err
	}

	state, err := statestore.LoadFile(p.StatePath())
	if err != nil {
		return nil, err
	}

	files, err := p.ResolveSchema()
	if err != nil {
		return nil, err
	}
	parsed, err := p.ParseAll(files)
	if err != nil {
		return nil, err
	}

	_, lastSnapshot, _ := state.Latest()
	report, err := p.reconcile(state, lastSnapshot, parsed)
	if err != nil {
		return nil, err
	}

	ledger, err := migration.LoadLedgerFile(p.LedgerPath())
	if err != nil {
		return nil, err
	}
	tampered := ledger.Verify(p.LedgerChainPath()) != nil

	return &SyncReport{Collab: report, LedgerTampered: tampered}, nil
}
