package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
)

// sync returns the `sync` command (§4.9, §5): it reconciles the on-disk
// migrations directory against the state file and applied ledger,
// surfacing drift without mutating anything.
func sync() *cli.Command {
	return &cli.Command{
		Name:   "sync",
		Usage:  "Reconcile the migrations directory against recorded state",
		Before: requireProject,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			report, err := currentProject.Sync()
			if err != nil {
				return err
			}

			clean := true
			if len(report.Collab.NewMigrations) > 0 {
				clean = false
				pterm.Warning.Printfln("new migrations not yet integrated: %v", report.Collab.NewMigrations)
			}
			if len(report.Collab.RemovedMigrations) > 0 {
				clean = false
				pterm.Warning.Printfln("migrations recorded in state but missing on disk: %v", report.Collab.RemovedMigrations)
			}
			if report.Collab.HasConflicts() {
				clean = false
				pterm.Error.Printfln("conflicts: %v", report.Collab.Conflicts)
			}
			if report.LedgerTampered {
				clean = false
				pterm.Error.Println("applied-migration ledger chain does not match recorded entries")
			}

			if clean {
				pterm.Success.Println("state is in sync with disk")
			} else {
				pterm.Info.Println("run `sqlsync resolve` to integrate new migrations")
			}
			return nil
		},
	}
}
