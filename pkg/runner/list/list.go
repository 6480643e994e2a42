// Package list prints the trip's points.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/printers"
)

// Source is what List reads from; app.Service satisfies it.
type Source interface {
	List(ctx context.Context) ([]point.Point, error)
	Catalog(ctx context.Context) (point.Catalog, error)
}

type List struct {
	Source Source
	Filter point.FilterType
	Sort   point.SortType
	ShowID bool
	Output string
	Now    func() time.Time
}

func (l *List) Do(ctx context.Context) error {
	if l.Source == nil {
		return errors.New("can not list, no source")
	}
	all, err := l.Source.List(ctx)
	if err != nil {
		return err
	}
	c, err := l.Source.Catalog(ctx)
	if err != nil {
		return err
	}

	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	shown := point.Sort(point.Filter(all, l.Filter, now()), l.Sort)

	switch l.Output {
	case "json":
		b, err := json.Marshal(shown)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))

	default:
		pp := printers.PrettyPrint{ShowID: l.ShowID}
		pp.NewLine()
		pp.TitleWithCount(l.Filter.Title(), len(shown))
		pp.Points(c, shown...)
	}
	return nil
}
