package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
trip ui
TRIP_REMOTE_LATENCY=800ms TRIP_REMOTE_FAIL_RATE=0.2 trip ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := loadService(true)
			if err != nil {
				return err
			}
			i := ui.UI{Service: svc, Config: cfg}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
