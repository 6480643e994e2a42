// Package seed stores the default catalog and sample points.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
)

// Seeder is what Seed writes to; app.Service satisfies it.
type Seeder interface {
	Seed(ctx context.Context, now time.Time, samples bool) (int, error)
}

type Seed struct {
	Seeder  Seeder
	Samples bool
	Now     func() time.Time
}

func (s *Seed) Do(ctx context.Context) error {
	if s.Seeder == nil {
		return errors.New("can not seed, no seeder")
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	n, err := s.Seeder.Seed(ctx, now(), s.Samples)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(color.Output, "stored the default catalog")
	if s.Samples {
		_, _ = fmt.Fprintf(color.Output, "stored %d sample points\n", n)
	}
	return nil
}
