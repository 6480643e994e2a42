package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/trip/pkg/point"
	"tableflip.dev/trip/pkg/store"
)

var (
	// ErrNotFound is returned when an id has no stored point.
	ErrNotFound = errors.New("app: point not found")
	// ErrRemoteUnavailable is returned when a simulated remote call fails.
	ErrRemoteUnavailable = errors.New("app: remote unavailable")
)

// Service provides high-level operations for trip points. It wraps
// persistence so UIs and CLIs share validation and id assignment. Latency and
// FailRate make it behave like a slow, unreliable remote.
type Service struct {
	Persistence store.Persistence

	Latency  time.Duration
	FailRate float64

	// Roll returns a value in [0,1); defaults to math/rand/v2.
	Roll func() float64
	// NewID defaults to uuid.NewString.
	NewID func() string
}

// List returns every stored point ordered by start.
func (s *Service) List(ctx context.Context) ([]point.Point, error) {
	if err := s.remote(ctx); err != nil {
		return nil, err
	}
	return s.Persistence.ListPoints(ctx)
}

// Catalog returns the destinations and offers points may reference.
func (s *Service) Catalog(ctx context.Context) (point.Catalog, error) {
	if err := s.remote(ctx); err != nil {
		return point.Catalog{}, err
	}
	return s.Persistence.Catalog(ctx)
}

// Create validates p, assigns it a fresh id and stores it.
func (s *Service) Create(ctx context.Context, p point.Point) (point.Point, error) {
	if err := s.remote(ctx); err != nil {
		return point.Point{}, err
	}
	p = p.Clone()
	if err := s.validate(ctx, &p); err != nil {
		return point.Point{}, err
	}
	p.ID = s.newID()
	if err := s.Persistence.StorePoint(p); err != nil {
		return point.Point{}, err
	}
	return p, nil
}

// Replace overwrites the stored point with the same id.
func (s *Service) Replace(ctx context.Context, p point.Point) (point.Point, error) {
	if err := s.remote(ctx); err != nil {
		return point.Point{}, err
	}
	p = p.Clone()
	if _, err := s.Persistence.ReadPoint(p.ID); err != nil {
		return point.Point{}, s.notFound(p.ID, err)
	}
	if err := s.validate(ctx, &p); err != nil {
		return point.Point{}, err
	}
	if err := s.Persistence.StorePoint(p); err != nil {
		return point.Point{}, err
	}
	return p, nil
}

// Delete removes the point with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.remote(ctx); err != nil {
		return err
	}
	if err := s.Persistence.DeletePoint(id); err != nil {
		return s.notFound(id, err)
	}
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

// validate normalises the destination to its catalog spelling and checks
// invariants.
func (s *Service) validate(ctx context.Context, p *point.Point) error {
	c, err := s.Persistence.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("app: load catalog: %w", err)
	}
	if d, ok := c.Destination(p.Destination); ok {
		p.Destination = d.Name
	}
	return point.Validate(*p, c)
}

// remote simulates the round trip: it waits Latency (or until ctx is done)
// and then fails with probability FailRate.
func (s *Service) remote(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	if s.Latency > 0 {
		timer := time.NewTimer(s.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.FailRate > 0 && s.roll() < s.FailRate {
		return ErrRemoteUnavailable
	}
	return nil
}

func (s *Service) roll() float64 {
	if s.Roll != nil {
		return s.Roll()
	}
	return rand.Float64()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) notFound(id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %q", ErrNotFound, strings.TrimSpace(id))
	}
	return err
}
