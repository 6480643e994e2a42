// Package remove deletes points by id.
package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
)

// Deleter is what Remove deletes from; app.Service satisfies it.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

type Remove struct {
	Deleter Deleter
	IDs     []string
}

// Do deletes every id and reports each failure; it stops at the first.
func (r *Remove) Do(ctx context.Context) error {
	if r.Deleter == nil {
		return errors.New("can not delete, no deleter")
	}
	for _, id := range r.IDs {
		if err := r.Deleter.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete %s: %w", id, err)
		}
		_, _ = fmt.Fprintf(color.Output, "deleted %s\n", id)
	}
	return nil
}
