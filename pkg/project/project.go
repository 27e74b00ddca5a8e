// Package project wires the core packages (sqlfile, differ, coldiff,
// statestore, migration, rollback, collab) into the operations named by
// the CLI surface: generate, status, sync, resolve, rollback,
// mark-applied. It also owns the one external-boundary concern the core
// deliberately excludes (§1, §6): resolving the configured schema
// traversal tree into an ordered list of source files.
//
// Grounded on housekeeper's pkg/project/project.go Project type
// (root directory plus an injected collaborator) and
// housekeeper's pkg/project/schema.go single-pass file-kind
// dispatch; here the dispatch walks a YAML traversal tree instead of a
// single entrypoint file, and the Project ties together the sqlsync core
// instead of a ClickHouse formatter.
package project

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"sqlsync.dev/sqlsync/pkg/config"
	"sqlsync.dev/sqlsync/pkg/consts"
	"sqlsync.dev/sqlsync/pkg/migration"
	"sqlsync.dev/sqlsync/pkg/sqlfile"
)

// ErrNoConfig is returned by operations that require a loaded
// configuration when none was found.
var ErrNoConfig = errors.New("sqlsync.yaml not found")

type (
	// SourceFile is a single resolved entry from the schema traversal tree:
	// a project-relative path and its text content, in traversal order.
	SourceFile struct {
		RelPath string
		Text    string
	}

	// Project ties the project root directory and its loaded configuration
	// to the core packages, and issues filenames via a shared Namer so
	// migrations generated within one process are strictly ordered.
	Project struct {
		RootDir string
		Config  *config.Config
		namer   *migration.Namer
	}
)

// New constructs a Project rooted at dir, using cfg if present (nil is
// accepted; operations that need a config then return ErrNoConfig).
func New(dir string, cfg *config.Config) *Project {
	return &Project{RootDir: dir, Config: cfg, namer: migration.NewNamer()}
}

// requireConfig returns ErrNoConfig when the project has no loaded
// configuration.
func (p *Project) requireConfig() error {
	if p.Config == nil {
		return ErrNoConfig
	}
	return nil
}

// StatePath returns the absolute path to the project's state file.
func (p *Project) StatePath() string {
	return filepath.Join(p.RootDir, consts.StateFileName)
}

// MigrationsDir returns the absolute path to the configured migrations
// output directory.
func (p *Project) MigrationsDir() string {
	return filepath.Join(p.RootDir, p.Config.Migrations.OutputDir)
}

// LedgerPath returns the absolute path to the applied-migration ledger.
func (p *Project) LedgerPath() string {
	return filepath.Join(p.RootDir, consts.AppliedLedgerFileName)
}

// LedgerChainPath returns the absolute path to the ledger's tamper
// evidence companion file.
func (p *Project) LedgerChainPath() string {
	return filepath.Join(p.RootDir, consts.AppliedLedgerChainFileName)
}

// ResolveSchema walks the configured schema traversal tree (§6: "the core
// receives a pre-ordered seq<{relpath, text}>") and reads each leaf .sql
// file from disk, in document order. This is the external traversal
// boundary the core spec deliberately excludes (§1); it lives here, at
// the orchestration layer, rather than in any core package.
func (p *Project) ResolveSchema() ([]SourceFile, error) {
	if err := p.requireConfig(); err != nil {
		return nil, err
	}

	var files []SourceFile
	if err := walkSchemaNode(&p.Config.Schema, func(relpath string) error {
		abs := filepath.Join(p.RootDir, relpath)
		data, err := os.ReadFile(abs)
		if err != nil {
			return errors.Wrapf(err, "failed to read schema source file %s", relpath)
		}
		files = append(files, SourceFile{RelPath: filepath.ToSlash(relpath), Text: string(data)})
		return nil
	}); err != nil {
		return nil, err
	}
	return files, nil
}

// walkSchemaNode recursively visits every scalar leaf of node, in document
// order, invoking visit with its string value (expected to be a
// project-relative file path).
func walkSchemaNode(node *yaml.Node, visit func(string) error) error {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		for _, c := range node.Content {
			if err := walkSchemaNode(c, visit); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		for i := 1; i < len(node.Content); i += 2 {
			if err := walkSchemaNode(node.Content[i], visit); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, c := range node.Content {
			if err := walkSchemaNode(c, visit); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		return visit(node.Value)
	}
	return nil
}

// ParseAll parses every resolved source file via pkg/sqlfile, in the same
// order ResolveSchema returned them.
func (p *Project) ParseAll(files []SourceFile) ([]*sqlfile.ParsedFile, error) {
	parsed := make([]*sqlfile.ParsedFile, 0, len(files))
	for _, f := range files {
		pf, err := sqlfile.Parse(f.RelPath, f.Text)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, pf)
	}
	return parsed, nil
}

// DiskMigrations lists every validly-named migration file present in the
// migrations output directory, sorted ascending (chronological order).
// A missing directory is treated as empty.
func (p *Project) DiskMigrations() ([]string, error) {
	entries, err := os.ReadDir(p.MigrationsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read migrations directory %s", p.MigrationsDir())
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if migration.IsValidName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadMigration reads the rendered content of the migration named name
// from the migrations directory.
func (p *Project) ReadMigration(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(p.MigrationsDir(), name))
	if err != nil {
		return "", errors.Wrapf(err, "failed to read migration %s", name)
	}
	return string(data), nil
}

// WriteMigration writes content to a new migration file named name in the
// migrations output directory, creating the directory if necessary.
func (p *Project) WriteMigration(name, content string) error {
	dir := p.MigrationsDir()
	if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
		return errors.Wrapf(err, "failed to create migrations directory %s", dir)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), consts.ModeFile); err != nil {
		return errors.Wrapf(err, "failed to write migration %s", path)
	}
	return nil
}
