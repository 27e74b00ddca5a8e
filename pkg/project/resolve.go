package project

import (
	"sqlsync.dev/sqlsync/pkg/collab"
	"sqlsync.dev/sqlsync/pkg/statestore"
)

// ResolveResult summarizes a Resolve call: the migrations whose snapshots
// were integrated, and those removed from state because their file is
// gone from disk.
type ResolveResult struct {
	Integrated []string
	Pruned     []string
}

// Resolve integrates new-on-disk migrations (pulled from another
// developer, per §4.9) into the local state, and prunes state entries for
// migrations no longer present on disk. It does not re-derive historical
// per-migration snapshots (those are never recoverable after the fact);
// instead, each new-on-disk migration's entry is recorded against the
// current parsed file tree, which is the best available structural
// approximation, and the resulting drift (if any) surfaces on the next
// `sync`, per the Open Question decision to unify state representations.
func (p *Project) Resolve() (*ResolveResult, error) {
	if err := p.requireConfig(); err != nil {
		return nil, err
	}

	state, err := statestore.LoadFile(p.StatePath())
	if err != nil {
		return nil, err
	}

	disk, err := p.DiskMigrations()
	if err != nil {
		return nil, err
	}

	newNames, _ := diffNames(disk, state.Names())
	removed := removedNames(state.Names(), disk)

	files, err := p.ResolveSchema()
	if err != nil {
		return nil, err
	}
	parsed, err := p.ParseAll(files)
	if err != nil {
		return nil, err
	}
	currentSnap := snapshotFromParsed(parsed)

	for _, name := range newNames {
		text, err := p.ReadMigration(name)
		if err != nil {
			return nil, err
		}
		snap := *currentSnap
		snap.AppliedChanges = collab.ExtractAppliedChanges(text)
		state.Put(name, &snap)
	}
	for _, name := range removed {
		state.Delete(name)
	}

	if err := state.SaveFile(p.StatePath()); err != nil {
		return nil, err
	}

	return &ResolveResult{Integrated: newNames, Pruned: removed}, nil
}

func removedNames(known, disk []string) []string {
	diskSet := make(map[string]struct{}, len(disk))
	for _, d := range disk {
		diskSet[d] = struct{}{}
	}
	var removed []string
	for _, k := range known {
		if _, ok := diskSet[k]; !ok {
			removed = append(removed, k)
		}
	}
	return removed
}
