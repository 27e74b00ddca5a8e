package cmd

import "go.uber.org/fx"

// Module provides every sqlsync subcommand into the `commands` group and
// invokes Run to assemble and execute the CLI application, mirroring the
// teacher's own fx.Module("cli", ...) wiring in pkg/cmd/fx.go.
var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(generate, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(status, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(sync, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(resolve, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(rollback, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(markApplied, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
