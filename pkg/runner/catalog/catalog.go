// Package catalog prints the destinations and offers.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/printers"
)

// Source is what Catalog reads from; app.Service satisfies it.
type Source interface {
	Catalog(ctx context.Context) (point.Catalog, error)
}

type Catalog struct {
	Source Source
	Output string
}

func (c *Catalog) Do(ctx context.Context) error {
	if c.Source == nil {
		return errors.New("can not show catalog, no source")
	}
	cat, err := c.Source.Catalog(ctx)
	if err != nil {
		return err
	}
	if c.Output == "json" {
		b, err := json.Marshal(cat)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Catalog(cat)
	return nil
}
