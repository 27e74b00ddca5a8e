package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"sqlsync.dev/sqlsync/pkg/cmd/testutil"
	"sqlsync.dev/sqlsync/pkg/project"
)

func TestMarkAppliedCommand_RequiresArg(t *testing.T) {
	fixture := testutil.TestProject(t, nil)
	currentProject = fixture.Project
	defer func() { currentProject = nil }()

	command := markApplied()
	app := &cli.Command{Name: "test", Action: command.Action}

	err := app.Run(context.Background(), []string{"test"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires a migration name")
}

func TestMarkAppliedCommand_MarksSingleMigration(t *testing.T) {
	fixture := testutil.TestProject(t, nil).
		WriteMigration("20260101000000_add_users.sql", "-- migration\nCREATE TABLE users (id SERIAL PRIMARY KEY);\n")
	currentProject = fixture.Project
	defer func() { currentProject = nil }()

	command := markApplied()
	app := &cli.Command{Name: "test", Action: command.Action}
	require.NoError(t, app.Run(context.Background(), []string{"test", "20260101000000_add_users.sql"}))

	st, err := fixture.Project.Status()
	require.NoError(t, err)
	require.Equal(t, []string{"20260101000000_add_users.sql"}, st.Applied)
}

func TestMarkAppliedCommand_All(t *testing.T) {
	fixture := testutil.TestProject(t, nil).
		WriteMigration("20260101000000_add_users.sql", "-- migration\nCREATE TABLE users (id SERIAL PRIMARY KEY);\n").
		WriteMigration("20260101000100_add_orders.sql", "-- migration\nCREATE TABLE orders (id SERIAL PRIMARY KEY);\n")
	currentProject = fixture.Project
	defer func() { currentProject = nil }()

	command := markApplied()
	app := &cli.Command{Name: "test", Action: command.Action}
	require.NoError(t, app.Run(context.Background(), []string{"test", project.MarkAppliedAll}))

	st, err := fixture.Project.Status()
	require.NoError(t, err)
	require.Empty(t, st.Pending)
	require.Len(t, st.Applied, 2)
}
