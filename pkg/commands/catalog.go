package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/trip/pkg/runner/catalog"
)

func addCatalog(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the destinations and offers points can use.",
		Example: `
trip catalog
trip catalog --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			c := catalog.Catalog{Source: svc}
			if oo.JSON {
				c.Output = "json"
			}
			err = c.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
