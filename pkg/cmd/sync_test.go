package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"sqlsync.dev/sqlsync/pkg/cmd/testutil"
)

func TestSyncCommand_CleanProject(t *testing.T) {
	fixture := testutil.TestProject(t, nil)
	currentProject = fixture.Project
	defer func() { currentProject = nil }()

	command := sync()
	app := &cli.Command{Name: "test", Action: command.Action}

	require.NoError(t, app.Run(context.Background(), []string{"test"}))
}

func TestSyncCommand_ReportsNewDiskMigration(t *testing.T) {
	fixture := testutil.TestProject(t, nil).
		WriteMigration("20260101000000_add_users.sql", "-- migration\nCREATE TABLE users (id SERIAL PRIMARY KEY);\n")
	currentProject = fixture.Project
	defer func() { currentProject = nil }()

	report, err := fixture.Project.Sync()
	require.NoError(t, err)
	require.Contains(t, report.Collab.NewMigrations, "20260101000000_add_users.sql")

	command := sync()
	app := &cli.Command{Name: "test", Action: command.Action}
	require.NoError(t, app.Run(context.Background(), []string{"test"}))
}
