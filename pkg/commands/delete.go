package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/trip/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete points by id.",
		Example: `
trip list --id
trip delete 0b6f3c1e-4d0a-4d8e-9f7e-3b1c2a9d5e10
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			r := remove.Remove{Deleter: svc, IDs: args}
			err = r.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
