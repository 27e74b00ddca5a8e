package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
)

// status returns the `status` command (SPEC_FULL.md SUPPLEMENTED FEATURE
// #2): it reports which on-disk migrations have been marked applied
// locally versus which are still pending.
func status() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show which generated migrations are applied or pending locally",
		Before: requireProject,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := currentProject.Status()
			if err != nil {
				return err
			}

			if len(st.Applied) == 0 && len(st.Pending) == 0 {
				pterm.Info.Println("no migrations found")
				return nil
			}

			rows := [][]string{{"Migration", "Status"}}
			for _, name := range st.Applied {
				rows = append(rows, []string{name, "applied"})
			}
			for _, name := range st.Pending {
				rows = append(rows, []string{name, "pending"})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}
}
