package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	po := &options.PointOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a point to the trip.",
		Example: `
trip add --type flight --destination Geneva --start "2025-06-10 14:00" --length 2h --price 160
trip add -t check-in -d Chamonix --length 2d --offer breakfast
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := po.Point(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			a := add.Add{Creator: svc, Point: p}
			if oo.JSON {
				a.Output = "json"
			}
			err = a.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddPointArgs(cmd, po)
	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return names(point.Types()), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("destination", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return destinationCompletions(), cobra.ShellCompDirectiveNoFileComp
	})
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func destinationCompletions() []string {
	svc, _, err := loadService(false)
	if err != nil {
		return nil
	}
	c, err := svc.Catalog(context.Background())
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(c.Destinations))
	for _, d := range c.Destinations {
		out = append(out, d.Name)
	}
	return out
}
