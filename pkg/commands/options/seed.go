package options

import (
	"github.com/spf13/cobra"
)

// SeedOptions
type SeedOptions struct {
	Samples bool
}

func AddSeedArgs(cmd *cobra.Command, o *SeedOptions) {
	cmd.Flags().BoolVar(&o.Samples, "samples", false,
		`Also store a handful of sample points around today.`)
}
