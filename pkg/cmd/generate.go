package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
	"sqlsync.dev/sqlsync/pkg/collab"
	"sqlsync.dev/sqlsync/pkg/project"
)

// generate returns the `generate <name>` command (§6, §4.4–§4.9): it
// computes the current diff against the last recorded state and, if
// non-empty, renders and writes a new migration file.
//
// Flags:
//   - --author: recorded on the new migration's snapshot
//   - --skip-conflict-check: bypass collaboration reconciliation entirely
//   - --force: proceed past a detected conflict or new-on-disk migration
//     without the interactive confirmation prompt
func generate() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate a migration from the current schema diff",
		ArgsUsage: "<name>",
		Before:    requireProject,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "author",
				Usage: "author recorded on the new migration's snapshot",
			},
			&cli.BoolFlag{
				Name:  "skip-conflict-check",
				Usage: "bypass collaboration reconciliation entirely",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "proceed past a detected conflict or new-on-disk migration",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runGenerate(cmd)
		},
	}
}

func runGenerate(cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return errors.New("generate requires a migration name")
	}

	opts := project.GenerateOptions{
		Author:            cmd.String("author"),
		SkipConflictCheck: cmd.Bool("skip-conflict-check"),
		Force:             cmd.Bool("force"),
	}

	result, err := currentProject.Generate(name, opts)
	if (errors.Is(err, project.ErrConflictDetected) || errors.Is(err, collab.ErrNewMigrations)) && !opts.Force {
		confirmed, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText(err.Error() + " — proceed anyway?").
			Show()
		if !confirmed {
			return err
		}
		opts.Force = true
		result, err = currentProject.Generate(name, opts)
	}
	if err != nil {
		return err
	}

	if result.Empty {
		pterm.Info.Println("no changes detected; nothing to generate")
		return nil
	}

	pterm.Success.Printfln("generated migration %s", result.Filename)
	if result.Report != nil && len(result.Report.NewMigrations) > 0 {
		pterm.Warning.Printfln("new migrations pulled from another developer: %v", result.Report.NewMigrations)
	}
	return nil
}
