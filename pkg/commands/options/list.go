package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/point"
)

// ListOptions
type ListOptions struct {
	Filter string
	Sort   string
	ShowID bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVar(&o.Filter, "filter", string(point.FilterEverything),
		`Only show points matching the filter. One of everything, future, present or past.`)
	cmd.Flags().StringVar(&o.Sort, "sort", string(point.SortDefault),
		`Order of the points. One of day, time or price.`)
	cmd.Flags().BoolVar(&o.ShowID, "id", false,
		`Show point ids.`)
}

// Parse resolves the filter and sort flags.
func (o *ListOptions) Parse() (point.FilterType, point.SortType, error) {
	ft, err := point.ParseFilterType(o.Filter)
	if err != nil {
		return "", "", err
	}
	st, err := point.ParseSortType(o.Sort)
	if err != nil {
		return "", "", err
	}
	return ft, st, nil
}
