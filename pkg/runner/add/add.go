// Package add stores a new point.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/trip/pkg/point"
)

// Creator is what Add writes to; app.Service satisfies it.
type Creator interface {
	Create(ctx context.Context, p point.Point) (point.Point, error)
}

type Add struct {
	Creator Creator
	Point   point.Point
	Output  string
}

func (a *Add) Do(ctx context.Context) error {
	if a.Creator == nil {
		return errors.New("can not add, no creator")
	}
	created, err := a.Creator.Create(ctx, a.Point)
	if err != nil {
		return err
	}
	if a.Output == "json" {
		b, err := json.Marshal(created)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	_, _ = color.New(color.FgGreen).Fprintf(color.Output, "added %s %s (%s)\n",
		created.Type.Title(), created.Destination, created.ID)
	return nil
}
