package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/timeutil"
)

// PointOptions are the fields of a point given on the command line.
type PointOptions struct {
	Type        string
	Destination string
	Start       string
	Length      string
	Price       int
	Offers      []string
}

func AddPointArgs(cmd *cobra.Command, o *PointOptions) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", string(point.Flight),
		`Kind of point, example: --type=check-in.`)
	cmd.Flags().StringVarP(&o.Destination, "destination", "d", "",
		`Destination name from the catalog.`)
	cmd.Flags().StringVar(&o.Start, "start", "",
		fmt.Sprintf(`Start time, example: --start="2025-06-10 14:00". Defaults to the current hour. Layout %q.`, timeutil.InputLayout))
	cmd.Flags().StringVar(&o.Length, "length", timeutil.DefaultLength,
		`How long the point lasts, example: --length=1d2h.`)
	cmd.Flags().IntVar(&o.Price, "price", 0,
		`Base price.`)
	cmd.Flags().StringSliceVar(&o.Offers, "offer", nil,
		`Offer id to include, repeatable.`)

	_ = cmd.MarkFlagRequired("destination")
}

// Point builds the point the flags describe. now fills in a missing start.
func (o *PointOptions) Point(now time.Time) (point.Point, error) {
	t, err := point.ParseType(o.Type)
	if err != nil {
		return point.Point{}, err
	}
	p := point.Blank(now)
	p.Type = t
	p.Destination = o.Destination
	p.Price = o.Price
	p.Offers = o.Offers
	if o.Start != "" {
		if p.Start, err = timeutil.ParseInstant(o.Start, now.Location()); err != nil {
			return point.Point{}, err
		}
	}
	length, _, err := timeutil.ParseLength(o.Length)
	if err != nil {
		return point.Point{}, err
	}
	p.Finish = p.Start.Add(length)
	return p, nil
}
