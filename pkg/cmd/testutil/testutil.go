// Package testutil builds isolated on-disk sqlsync projects for exercising
// the cmd package's command factories without a live CLI process.
//
// Grounded on the teacher's pkg/cmd/testutil/testutil.go ProjectFixture,
// adapted from a ClickHouse/housekeeper.yaml project to a plain
// migrations-directory/schema-tree sqlsync project; the docker and
// ClickHouse-XML helpers have no sqlsync equivalent and are dropped.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"sqlsync.dev/sqlsync/pkg/config"
	"sqlsync.dev/sqlsync/pkg/consts"
	"sqlsync.dev/sqlsync/pkg/project"
)

// SchemaFile is a single schema source file to seed into a test project,
// in the order it should appear in the generated schema traversal tree.
type SchemaFile struct {
	RelPath string
	SQL     string
}

// ProjectFixture is an isolated temp-directory sqlsync project.
type ProjectFixture struct {
	Dir     string
	Config  *config.Config
	Project *project.Project
	t       *testing.T
}

// TestProject creates a temp directory project with the given schema
// files written to disk and declared, in order, in the config's schema
// traversal tree.
func TestProject(t *testing.T, files []SchemaFile) *ProjectFixture {
	t.Helper()

	dir := t.TempDir()

	var schema strings.Builder
	schema.WriteString("migrations:\n  outputDir: migrations\n")
	if len(files) == 0 {
		schema.WriteString("schema: []\n")
	} else {
		schema.WriteString("schema:\n")
		for _, f := range files {
			full := filepath.Join(dir, filepath.FromSlash(f.RelPath))
			require.NoError(t, os.MkdirAll(filepath.Dir(full), consts.ModeDir))
			require.NoError(t, os.WriteFile(full, []byte(f.SQL), consts.ModeFile))
			schema.WriteString("  - " + f.RelPath + "\n")
		}
	}

	cfg, err := config.LoadConfig(strings.NewReader(schema.String()))
	require.NoError(t, err, "failed to load generated test config")

	require.NoError(t, os.WriteFile(filepath.Join(dir, consts.ConfigFileName), []byte(schema.String()), consts.ModeFile))

	return &ProjectFixture{
		Dir:     dir,
		Config:  cfg,
		Project: project.New(dir, cfg),
		t:       t,
	}
}

// WriteMigration writes a pre-existing migration file directly into the
// fixture's migrations directory, bypassing Generate.
func (p *ProjectFixture) WriteMigration(name, content string) *ProjectFixture {
	p.t.Helper()
	require.NoError(p.t, p.Project.WriteMigration(name, content))
	return p
}
