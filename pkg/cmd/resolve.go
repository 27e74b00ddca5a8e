package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
)

// resolve returns the `resolve` command (§4.9): it integrates
// new-on-disk migrations pulled from another developer into local state,
// and prunes state entries for migrations no longer present on disk.
func resolve() *cli.Command {
	return &cli.Command{
		Name:   "resolve",
		Usage:  "Integrate new-on-disk migrations and prune removed ones from state",
		Before: requireProject,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			result, err := currentProject.Resolve()
			if err != nil {
				return err
			}

			if len(result.Integrated) == 0 && len(result.Pruned) == 0 {
				pterm.Info.Println("nothing to resolve")
				return nil
			}

			for _, name := range result.Integrated {
				pterm.Success.Printfln("integrated %s", name)
			}
			for _, name := range result.Pruned {
				pterm.Warning.Printfln("pruned %s (no longer on disk)", name)
			}
			return nil
		},
	}
}
