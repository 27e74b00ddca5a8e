// Sqlsync is a declarative SQL schema-management tool. It observes edits
// to an ordered tree of .sql schema files on disk and emits idempotent,
// timestamped migration files encoding the delta between the last
// recorded state and the current one.
//
// Usage:
//
//	# Generate a migration from the current schema diff
//	sqlsync generate add_users_table
//
//	# Show which generated migrations are applied or pending locally
//	sqlsync status
//
// For more information, see the project configuration and directive
// conventions documented in sqlsync.yaml and the schema source files
// themselves.
package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/fx"
	"sqlsync.dev/sqlsync/pkg/cmd"
)

// Build-time variables set by the release toolchain.
var (
	version string = "local"
	commit  string = "local"
	date    string = time.Now().UTC().Format(time.RFC3339)
)

func main() {
	app := fx.New(
		fx.Supply(&cmd.Version{Version: version, Commit: commit, Timestamp: date}),
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Provide(func() []string { return os.Args }),
		cmd.Module,
		fx.NopLogger,
	)

	app.Run()
}
