package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
)

// markApplied returns the `mark-applied <name|all>` command (§6,
// SPEC_FULL.md SUPPLEMENTED FEATURE #3): it appends a migration filename
// (or every pending migration, for the `all` sentinel) to the applied
// ledger without executing anything.
func markApplied() *cli.Command {
	return &cli.Command{
		Name:      "mark-applied",
		Usage:     "Record a migration (or `all` pending migrations) as applied locally",
		ArgsUsage: "<name|all>",
		Before:    requireProject,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			arg := cmd.Args().First()
			if arg == "" {
				return errors.New("mark-applied requires a migration name or `all`")
			}

			names, err := currentProject.MarkApplied(arg)
			if err != nil {
				return err
			}

			if len(names) == 0 {
				pterm.Info.Println("nothing to mark; no pending migrations")
				return nil
			}
			for _, name := range names {
				pterm.Success.Printfln("marked applied: %s", name)
			}
			return nil
		},
	}
}
