// Package statestore persists, per prior migration, the checksums and
// structural snapshots required to reproduce a diff (§3, §4.8). The
// on-disk shape is an ordered mapping of migration filename to
// MigrationSnapshot, JSON-encoded at sqlsync-state.json.
//
// Grounded on housekeeper's pkg/migrator/sumfile.go's
// load/verify/write pattern (read-whole-file, validate, atomic rewrite);
// here the persisted shape is a JSON snapshot map instead of a chained-hash
// text format, since the core's data model (§3) specifies JSON explicitly.
package statestore

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"sqlsync.dev/sqlsync/pkg/decltable"
)

// ErrStateCorrupt is returned when the state file is not valid JSON.
var ErrStateCorrupt = errors.New("sqlsync state file is corrupt")

type (
	// FileChecksum records the whole-file content checksum for a
	// FileContent-variant source file.
	FileChecksum struct {
		Checksum string `json:"checksum"`
	}

	// MigrationSnapshot is the per-migration record (§3) capturing enough
	// state to diff the next invocation against it. The collaboration
	// layer's EnhancedState (§3) is unified into this same record rather
	// than stored separately: AppliedChanges, Author, and Marked are the
	// MigrationInfo fields of that view, computed/maintained alongside the
	// diffing payload instead of in a second document.
	MigrationSnapshot struct {
		FileContentChecksums map[string]FileChecksum              `json:"file_content_checksums,omitempty"`
		SplitStatements      map[string][]string                  `json:"split_statements,omitempty"`
		DeclarativeTables    map[string]*decltable.TableDefinition `json:"declarative_tables,omitempty"`

		// AppliedChanges lists the source paths this migration touched,
		// recovered from its rendered header comments (§4.9).
		AppliedChanges []string `json:"applied_changes,omitempty"`
		// Author is the developer who generated this migration, if known.
		Author string `json:"author,omitempty"`
		// Marked protects this migration from rollback (§4.10).
		Marked bool `json:"marked,omitempty"`
	}
)

// NewSnapshot returns an empty, initialized MigrationSnapshot.
func NewSnapshot() *MigrationSnapshot {
	return &MigrationSnapshot{
		FileContentChecksums: make(map[string]FileChecksum),
		SplitStatements:      make(map[string][]string),
		DeclarativeTables:    make(map[string]*decltable.TableDefinition),
	}
}

// Paths returns the union of all relpaths recorded anywhere in the
// snapshot, sorted ascending.
func (s *MigrationSnapshot) Paths() []string {
	if s == nil {
		return nil
	}
	set := make(map[string]struct{})
	for p := range s.FileContentChecksums {
		set[p] = struct{}{}
	}
	for p := range s.SplitStatements {
		set[p] = struct{}{}
	}
	for p := range s.DeclarativeTables {
		set[p] = struct{}{}
	}
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// State is the ordered mapping of migration filename to MigrationSnapshot
// (§3's SqlSyncState). Keys sort lexicographically, which equals
// chronological order for the `YYYYMMDDHHMMSS_name.sql` filename scheme.
type State struct {
	snapshots map[string]*MigrationSnapshot
}

// New returns an empty state.
func New() *State {
	return &State{snapshots: make(map[string]*MigrationSnapshot)}
}

// Load parses a State from r. An empty reader yields an empty state.
func Load(r io.Reader) (*State, error) {
	raw := make(map[string]*MigrationSnapshot)
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return New(), nil
		}
		return nil, errors.Wrap(ErrStateCorrupt, err.Error())
	}
	for k, v := range raw {
		if v == nil {
			raw[k] = NewSnapshot()
		}
	}
	return &State{snapshots: raw}, nil
}

// LoadFile loads the state from path. A missing file is equivalent to an
// empty state, per §4.8.
func LoadFile(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errors.Wrapf(err, "failed to open state file %s", path)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Names returns the migration filenames present in the state, sorted
// ascending (lexicographic order, which equals chronological order).
func (s *State) Names() []string {
	names := make([]string, 0, len(s.snapshots))
	for name := range s.snapshots {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Snapshot returns the snapshot recorded under name, if any.
func (s *State) Snapshot(name string) (*MigrationSnapshot, bool) {
	snap, ok := s.snapshots[name]
	return snap, ok
}

// Put records snap under name, overwriting any prior entry. Existing
// entries under other names are preserved verbatim, per §4.8's "old
// snapshots are preserved verbatim" rule.
func (s *State) Put(name string, snap *MigrationSnapshot) {
	s.snapshots[name] = snap
}

// Delete removes the snapshot recorded under name, used by rollback.
func (s *State) Delete(name string) {
	delete(s.snapshots, name)
}

// Latest returns the snapshot with the lexicographically greatest key,
// which §3 defines as the "current" snapshot for diffing. Returns false
// when the state is empty.
func (s *State) Latest() (name string, snap *MigrationSnapshot, ok bool) {
	names := s.Names()
	if len(names) == 0 {
		return "", nil, false
	}
	last := names[len(names)-1]
	return last, s.snapshots[last], true
}

// Marked returns the set of migration names currently marked (protected
// from rollback), suitable for rollback.Plan/rollback.List.
func (s *State) Marked() map[string]bool {
	marked := make(map[string]bool)
	for name, snap := range s.snapshots {
		if snap.Marked {
			marked[name] = true
		}
	}
	return marked
}

// SetMarked mutates the Marked flag on the snapshots named, in place, per
// §3's "MigrationInfo.marked is the only field that mutates in place".
// Unknown names are ignored.
func (s *State) SetMarked(names []string, marked bool) {
	for _, name := range names {
		if snap, ok := s.snapshots[name]; ok {
			snap.Marked = marked
		}
	}
}

// Authors returns the recorded author for each migration name that has
// one, suitable for rollback.List.
func (s *State) Authors() map[string]string {
	authors := make(map[string]string)
	for name, snap := range s.snapshots {
		if snap.Author != "" {
			authors[name] = snap.Author
		}
	}
	return authors
}

// Save writes the state to w as indented JSON, keys sorted by
// encoding/json's own deterministic map-key ordering.
func (s *State) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.snapshots)
}

// SaveFile atomically writes the state to path: write-temp, then rename,
// per §4.8 and §5's crash-safety requirement that the state file is
// durable only after a full, valid write.
func (s *State) SaveFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sqlsync-state-*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp state file in %s", dir)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := s.Save(tmp); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to encode state")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp state file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "failed to rename temp state file to %s", path)
	}
	return nil
}
