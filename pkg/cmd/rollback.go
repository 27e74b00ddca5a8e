package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
)

// rollback returns the `rollback [name] [--list|--mark|--unmark|--force]`
// command (§4.10): by default it computes and applies a rollback plan
// (inclusive of the named target), pruning the undone migrations' state
// snapshots. --list enumerates every migration's status without mutating
// anything; --mark/--unmark toggle a migration's protected flag, which
// the plan refuses to cross.
func rollback() *cli.Command {
	return &cli.Command{
		Name:      "rollback",
		Usage:     "Compute or apply a rollback plan, or manage protected migrations",
		ArgsUsage: "[name...]",
		Before:    requireProject,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "list",
				Usage: "list every known migration with its protection status and author",
			},
			&cli.BoolFlag{
				Name:  "mark",
				Usage: "mark the named migrations as protected from rollback",
			},
			&cli.BoolFlag{
				Name:  "unmark",
				Usage: "remove the protected flag from the named migrations",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "skip the interactive confirmation before applying a rollback plan",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			switch {
			case cmd.Bool("list"):
				return runRollbackList(cmd)
			case cmd.Bool("mark"):
				return currentProject.RollbackMark(cmd.Args().Slice())
			case cmd.Bool("unmark"):
				return currentProject.RollbackUnmark(cmd.Args().Slice())
			default:
				return runRollbackApply(cmd)
			}
		},
	}
}

func runRollbackList(cmd *cli.Command) error {
	entries, err := currentProject.RollbackList()
	if err != nil {
		return err
	}

	rows := [][]string{{"Migration", "Author", "Marked"}}
	for _, e := range entries {
		marked := ""
		if e.Marked {
			marked = "yes"
		}
		rows = append(rows, []string{e.Name, e.Author, marked})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func runRollbackApply(cmd *cli.Command) error {
	target := cmd.Args().First()
	if target == "" {
		return errors.New("rollback requires a target migration name (or --list/--mark/--unmark)")
	}

	if !cmd.Bool("force") {
		confirmed, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText("roll back to " + target + "? this prunes state for it and every migration after it").
			Show()
		if !confirmed {
			return errors.New("rollback aborted")
		}
	}

	plan, err := currentProject.RollbackPlan(target)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("rolled back %d migration(s): %v", len(plan), plan)
	return nil
}
