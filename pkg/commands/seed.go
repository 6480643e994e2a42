package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/commands/options"
	"tableflip.dev/trip/pkg/runner/seed"
)

func addSeed(topLevel *cobra.Command) {
	so := &options.SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the default catalog, and optionally sample points.",
		Example: `
trip seed
trip seed --samples
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService(false)
			if err != nil {
				return err
			}
			s := seed.Seed{Seeder: svc, Samples: so.Samples}
			return s.Do(context.Background())
		},
	}

	options.AddSeedArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
