package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the points of the trip.",
		Example: `
trip list
trip list --filter future --sort price
trip list --id --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, st, err := lo.Parse()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, err := loadService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			l := list.List{
				Source: svc,
				Filter: ft,
				Sort:   st,
				ShowID: lo.ShowID,
			}
			if oo.JSON {
				l.Output = "json"
			}
			err = l.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddListArgs(cmd, lo)
	_ = cmd.RegisterFlagCompletionFunc("filter", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return names(point.FilterTypes()), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return names(point.SortTypes()), cobra.ShellCompDirectiveNoFileComp
	})
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func names[T ~string](all []T) []string {
	out := make([]string, 0, len(all))
	for _, v := range all {
		out = append(out, string(v))
	}
	return out
}
