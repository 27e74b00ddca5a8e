package project

import (
	"time"

	"github.com/pkg/errors"
	"sqlsync.dev/sqlsync/pkg/collab"
	"sqlsync.dev/sqlsync/pkg/differ"
	"sqlsync.dev/sqlsync/pkg/directive"
	"sqlsync.dev/sqlsync/pkg/migration"
	"sqlsync.dev/sqlsync/pkg/sqlfile"
	"sqlsync.dev/sqlsync/pkg/statestore"
)

// ErrConflictDetected is returned when generation finds a collaboration
// conflict (§4.9) and the caller did not override it.
var ErrConflictDetected = errors.New("conflict detected between on-disk migrations and local changes")

type (
	// GenerateOptions configures a Generate call. Interactive confirmation
	// is a boundary concern (§9, "Async & prompts"): the core never blocks
	// on input, it accepts the operator's decision already made.
	GenerateOptions struct {
		// Author, if set, is recorded on the new migration's snapshot.
		Author string
		// SkipConflictCheck bypasses collaboration reconciliation entirely.
		SkipConflictCheck bool
		// Force proceeds even when new-on-disk migrations or conflicts are
		// detected, mirroring an operator confirming a warning.
		Force bool
		// Now fixes the generation timestamp; defaults to time.Now when zero.
		Now time.Time
	}

	// GenerateResult summarizes a completed (or skipped) generation.
	GenerateResult struct {
		// Empty is true when the diff contained no changes; no migration
		// file was written.
		Empty bool
		// Filename is the generated migration's filename, set iff !Empty.
		Filename string
		// Report is the collaboration reconciliation outcome, if the check
		// ran.
		Report *collab.Report
	}
)

// Generate computes the current diff against the last recorded state and,
// if non-empty, renders and writes a new migration file, recording its
// snapshot. It implements §4.4 (differ) through §4.9 (collaboration) end
// to end.
func (p *Project) Generate(name string, opts GenerateOptions) (*GenerateResult, error) {
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

	var report *collab.Report
	if !opts.SkipConflictCheck {
		report, err = p.reconcile(state, lastSnapshot, parsed)
		if err != nil {
			return nil, err
		}
		if report.HasConflicts() && !opts.Force {
			return nil, errors.Wrapf(ErrConflictDetected, "%v", report.Conflicts)
		}
		if len(report.NewMigrations) > 0 && !opts.Force {
			return nil, errors.Wrapf(collab.ErrNewMigrations, "%v", report.NewMigrations)
		}
	}

	diff := differ.Compute(lastSnapshot, parsed)
	if diff.Empty() {
		return &GenerateResult{Empty: true, Report: report}, nil
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	filename := p.namer.Next(now, name)

	body := migration.Render(diff, name, now)
	if err := p.WriteMigration(filename, body); err != nil {
		return nil, err
	}

	snap := snapshotFromParsed(parsed)
	snap.AppliedChanges = collab.ExtractAppliedChanges(body)
	snap.Author = opts.Author
	state.Put(filename, snap)

	if err := state.SaveFile(p.StatePath()); err != nil {
		return nil, errors.Wrap(err, "migration file written but state save failed; `sync` will reconcile the orphan")
	}

	return &GenerateResult{Filename: filename, Report: report}, nil
}

// reconcile loads the disk migrations directory, recovers each new-on-disk
// migration's applied-changes from its rendered header, and runs the
// collaboration manager (§4.9) against the current state and the set of
// source paths modified locally since lastSnapshot.
func (p *Project) reconcile(state *statestore.State, lastSnapshot *statestore.MigrationSnapshot, currentParsed []*sqlfile.ParsedFile) (*collab.Report, error) {
	disk, err := p.DiskMigrations()
	if err != nil {
		return nil, err
	}

	newNames, _ := diffNames(disk, state.Names())
	content := make(map[string]string, len(newNames))
	for _, name := range newNames {
		text, err := p.ReadMigration(name)
		if err != nil {
			continue
		}
		content[name] = text
	}

	locallyModified := make(map[string]bool)
	if lastSnapshot != nil {
		d := differ.Compute(lastSnapshot, currentParsed)
		for _, change := range d.FileChanges {
			locallyModified[change.Path] = true
		}
	}

	return collab.Reconcile(disk, state, content, locallyModified), nil
}

// diffNames returns the names present in disk but absent from known.
func diffNames(disk, known []string) (newNames, removed []string) {
	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}
	for _, d := range disk {
		if _, ok := knownSet[d]; !ok {
			newNames = append(newNames, d)
		}
	}
	return newNames, nil
}

// snapshotFromParsed builds a MigrationSnapshot capturing the structural
// state of parsed, per §4.8's "snapshot update on successful migration
// emission".
func snapshotFromParsed(parsed []*sqlfile.ParsedFile) *statestore.MigrationSnapshot {
	snap := statestore.NewSnapshot()
	for _, pf := range parsed {
		switch pf.Type {
		case directive.DeclarativeTable:
			snap.DeclarativeTables[pf.Path] = pf.Table
		case directive.SplitStatements:
			if pf.Split != nil {
				snap.SplitStatements[pf.Path] = pf.Split.Checksums()
			}
		default:
			snap.FileContentChecksums[pf.Path] = statestore.FileChecksum{Checksum: pf.Checksum}
		}
	}
	return snap
}
