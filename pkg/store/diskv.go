package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/trip/pkg/point"
)

// ErrNotFound is returned when a point id has no stored record.
var ErrNotFound = errors.New("store: not found")

// Config tells the store where its data lives.
type Config interface {
	BasePath() string
}

// Persistence defines the persistence contract for trip points and the
// reference catalog.
type Persistence interface {
	ListPoints(ctx context.Context) ([]point.Point, error)
	ReadPoint(id string) (point.Point, error)
	StorePoint(p point.Point) error
	DeletePoint(id string) error
	Catalog(ctx context.Context) (point.Catalog, error)
	StoreCatalog(c point.Catalog) error
	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	pointsBucket     = "points"
	catalogBucket    = "catalog"
	destinationsFile = "destinations"
	offersFile       = "offers"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) ListPoints(ctx context.Context) ([]point.Point, error) {
	all := make([]point.Point, 0)
	for key := range p.d.KeysPrefix(pointsBucket+"-", ctx.Done()) {
		pt, err := p.readKey(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, pt)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortPoints(all)
	return all, nil
}

func (p *persistence) ReadPoint(id string) (point.Point, error) {
	key := toKey(pointsBucket, id)
	if !p.d.Has(key) {
		return point.Point{}, fmt.Errorf("%w: point %q", ErrNotFound, id)
	}
	return p.readKey(key)
}

func (p *persistence) readKey(key string) (point.Point, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return point.Point{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return point.Point{}, err
	}
	pt := point.Point{}
	if err := json.Unmarshal(val, &pt); err != nil {
		return point.Point{}, err
	}
	pk := keyToPathTransform(key)
	pt.ID = pk.FileName
	return pt, nil
}

func (p *persistence) StorePoint(pt point.Point) error {
	if strings.TrimSpace(pt.ID) == "" {
		return errors.New("store: point id required")
	}
	data, err := json.Marshal(pt)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(pointsBucket, pt.ID), data)
}

func (p *persistence) DeletePoint(id string) error {
	key := toKey(pointsBucket, id)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: point %q", ErrNotFound, id)
	}
	return p.d.Erase(key)
}

func (p *persistence) Catalog(ctx context.Context) (point.Catalog, error) {
	var c point.Catalog
	if err := p.readJSON(toKey(catalogBucket, destinationsFile), &c.Destinations); err != nil {
		return point.Catalog{}, fmt.Errorf("store: read destinations: %w", err)
	}
	if err := p.readJSON(toKey(catalogBucket, offersFile), &c.Offers); err != nil {
		return point.Catalog{}, fmt.Errorf("store: read offers: %w", err)
	}
	return c, ctx.Err()
}

func (p *persistence) StoreCatalog(c point.Catalog) error {
	dest, err := json.Marshal(c.Destinations)
	if err != nil {
		return err
	}
	offers, err := json.Marshal(c.Offers)
	if err != nil {
		return err
	}
	if err := p.d.Write(toKey(catalogBucket, destinationsFile), dest); err != nil {
		return err
	}
	return p.d.Write(toKey(catalogBucket, offersFile), offers)
}

// readJSON leaves target untouched when the key has never been written.
func (p *persistence) readJSON(key string, target any) error {
	if !p.d.Has(key) {
		return nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		return err
	}
	if len(val) == 0 {
		return nil
	}
	return json.Unmarshal(val, target)
}

func sortPoints(points []point.Point) {
	sort.SliceStable(points, func(i, j int) bool {
		left, right := points[i], points[j]
		if left.Start.Equal(right.Start) {
			return left.ID < right.ID
		}
		return left.Start.Before(right.Start)
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:1],
		FileName: strings.Join(parts[1:], "-"),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `bucket-name`. Names may contain dashes (uuids); the bucket
// never does.
func toKey(bucket, name string) string {
	return fmt.Sprintf("%s-%s", bucket, name)
}
