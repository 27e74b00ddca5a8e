package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"sqlsync.dev/sqlsync/pkg/cmd/testutil"
)

func TestGenerateCommand_RequiresName(t *testing.T) {
	fixture := testutil.TestProject(t, []testutil.SchemaFile{
		{RelPath: "db/users.sql", SQL: "-- sqlsync: declarativeTable\nCREATE TABLE users (id SERIAL PRIMARY KEY);\n"},
	})
	currentProject = fixture.Project
	defer func() { currentProject = nil }()

	command := generate()
	app := &cli.Command{Name: "test", Flags: command.Flags, Action: command.Action}

	err := app.Run(context.Background(), []string{"test"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires a migration name")
}

func TestGenerateCommand_WritesMigration(t *testing.T) {
	fixture := testutil.TestProject(t, []testutil.SchemaFile{
		{RelPath: "db/users.sql", SQL: "-- sqlsync: declarativeTable\nCREATE TABLE users (id SERIAL PRIMARY KEY);\n"},
	})
	currentProject = fixture.Project
	defer func() { currentProject = nil }()

	command := generate()
	app := &cli.Command{Name: "test", Flags: command.Flags, Action: command.Action}

	err := app.Run(context.Background(), []string{"test", "add_users"})
	require.NoError(t, err)

	names, err := fixture.Project.DiskMigrations()
	require.NoError(t, err)
	require.Len(t, names, 1)
	require.Contains(t, names[0], "add_users")
}

func TestGenerateCommand_NoopOnSecondRun(t *testing.T) {
	fixture := testutil.TestProject(t, []testutil.SchemaFile{
		{RelPath: "db/users.sql", SQL: "-- sqlsync: declarativeTable\nCREATE TABLE users (id SERIAL PRIMARY KEY);\n"},
	})
	currentProject = fixture.Project
	defer func() { currentProject = nil }()

	command := generate()
	app := &cli.Command{Name: "test", Flags: command.Flags, Action: command.Action}

	require.NoError(t, app.Run(context.Background(), []string{"test", "first"}))
	require.NoError(t, app.Run(context.Background(), []string{"test", "second"}))

	names, err := fixture.Project.DiskMigrations()
	require.NoError(t, err)
	require.Len(t, names, 1, "second run should detect no schema changes and write nothing")
}
