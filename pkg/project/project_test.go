package project_test

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

// schemaFile is a single schema source to seed into a test project, in
// traversal order.
type schemaFile struct {
	relpath string
	sql     string
}

// newTestProject writes files to a temp directory, declares them (in
// order) in the config's schema traversal tree, and returns the resulting
// Project.
func newTestProject(t *testing.T, files ...schemaFile) *project.Project {
	t.Helper()

	dir := t.TempDir()

	var yamlSrc strings.Builder
	yamlSrc.WriteString("migrations:\n  outputDir: migrations\n")
	if len(files) == 0 {
		yamlSrc.WriteString("schema: []\n")
	} else {
		yamlSrc.WriteString("schema:\n")
		for _, f := range files {
			full := filepath.Join(dir, filepath.FromSlash(f.relpath))
			require.NoError(t, os.MkdirAll(filepath.Dir(full), consts.ModeDir))
			require.NoError(t, os.WriteFile(full, []byte(f.sql), consts.ModeFile))
			yamlSrc.WriteString("  - " + f.relpath + "\n")
		}
	}

	cfg, err := config.LoadConfig(strings.NewReader(yamlSrc.String()))
	require.NoError(t, err)

	return project.New(dir, cfg)
}

func TestProject_ResolveSchema_PreservesOrder(t *testing.T) {
	p := newTestProject(t,
		schemaFile{relpath: "db/a.sql", sql: "-- sqlsync: declarativeTable\nCREATE TABLE a (id SERIAL PRIMARY KEY);\n"},
		schemaFile{relpath: "db/b.sql", sql: "-- sqlsync: declarativeTable\nCREATE TABLE b (id SERIAL PRIMARY KEY);\n"},
	)

	files, err := p.ResolveSchema()
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "db/a.sql", files[0].RelPath)
	require.Equal(t, "db/b.sql", files[1].RelPath)
}

func TestProject_DiskMigrations_EmptyWhenDirMissing(t *testing.T) {
	p := newTestProject(t)

	names, err := p.DiskMigrations()
	require.NoError(t, err)
	require.Empty(t, names)
}
