// Package cmd wires the sqlsync CLI surface (§6) into the project
// orchestration layer: six urfave/cli/v3 subcommands — generate, status,
// sync, resolve, rollback, mark-applied — assembled into one app via
// go.uber.org/fx, mirroring the teacher's own fx-wired command group.
//
// Grounded on sqlsync.dev/sqlsync/pkg/cmd/root.go's Params/Run shape
// (global --dir flag, project auto-detection in a Before hook, fx
// lifecycle hooks driving app.Run and the process exit code); the
// ClickHouse project auto-detection is replaced by sqlsync.yaml
// detection and a *project.Project built from the loaded *config.Config
// instead of a ClickHouse formatter.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
	"sqlsync.dev/sqlsync/pkg/config"
	"sqlsync.dev/sqlsync/pkg/consts"
	"sqlsync.dev/sqlsync/pkg/project"
)

var currentProject *project.Project

type (
	// Params is the fx-injected input to Run: CLI args, the commands
	// registered into the `commands` group, and the fx primitives needed
	// to drive the process lifecycle and exit code.
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	// Version carries build-time version metadata into the --version
	// output.
	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the sqlsync CLI application. It registers the
// global --dir flag, detects a project by the presence of sqlsync.yaml in
// that directory, and routes to the registered subcommands.
//
// Global Flags:
//   - --dir, -d: project directory (defaults to current directory)
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "sqlsync",
		Usage: "A declarative SQL schema management tool",
		Description: `sqlsync observes edits to an ordered tree of .sql schema files on
disk and emits idempotent, timestamped migration files encoding the delta
between the last recorded state and the current one. It tracks which
migrations have been applied locally, detects divergence between
collaborators, and supports rollback planning.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "the project directory",
				Value:       ".",
				DefaultText: "Current directory",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			projectDir := cmd.String("dir")

			if err := os.Chdir(projectDir); err != nil {
				return ctx, err
			}

			_, err := os.Stat(consts.ConfigFileName)
			if os.IsNotExist(err) {
				return ctx, nil
			}
			if err != nil {
				return ctx, errors.Wrapf(err, "failed to stat %s", consts.ConfigFileName)
			}

			cfg, err := config.LoadConfigFile(consts.ConfigFileName)
			if err != nil {
				return ctx, err
			}

			pwd, err := os.Getwd()
			if err != nil {
				return ctx, errors.Wrap(err, "failed to get current working directory")
			}

			currentProject = project.New(pwd, cfg)
			return ctx, nil
		},
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("command failed", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

// requireProject is installed as a subcommand's Before hook; every
// subcommand in this CLI surface (§6) needs a detected project — sqlsync
// names no config-free command.
func requireProject(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if currentProject == nil {
		return ctx, errors.Wrapf(config.ErrConfigInvalid, "%s not found in %s", consts.ConfigFileName, cmd.String("dir"))
	}
	return ctx, nil
}
