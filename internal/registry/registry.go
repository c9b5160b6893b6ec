// Package registry owns the ordered list of restaurants. Every mutation writes
// the full snapshot through the configured store before it returns; if the
// write fails the in-memory list is left as it was.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"lunchbot/internal/domain"
	"lunchbot/internal/metrics"
	"lunchbot/internal/selector"
	"lunchbot/internal/types"
)

var _ domain.Registry = (*Registry)(nil)

type Registry struct {
	mu      sync.Mutex
	store   domain.SnapshotStore
	records []types.Restaurant
}

// Open loads the snapshot. A missing or malformed snapshot is an error the
// caller is expected to treat as fatal.
func Open(store domain.SnapshotStore) (*Registry, error) {
	records, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: load: %w", ErrPersistence, err)
	}

	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.Name]; dup {
			return nil, fmt.Errorf("%w: load: duplicate restaurant %q", ErrPersistence, r.Name)
		}
		seen[r.Name] = struct{}{}
	}

	metrics.RestaurantsTotal.Set(float64(len(records)))
	slog.Info("registry loaded", "restaurants", len(records))

	return &Registry{
		store:   store,
		records: types.Clone(records),
	}, nil
}

func (r *Registry) Add(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(name) >= 0 {
		metrics.ObserveRegistry("add", ErrAlreadyExists)
		return fmt.Errorf("%w: %q", ErrAlreadyExists, name)
	}

	next := append(types.Clone(r.records), types.Restaurant{Name: name})
	err := r.commitLocked(next)
	metrics.ObserveRegistry("add", err)
	if err != nil {
		return err
	}

	slog.Debug("restaurant added", "name", name)
	return nil
}

func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(name)
	if i < 0 {
		metrics.ObserveRegistry("remove", ErrNotFound)
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	next := make([]types.Restaurant, 0, len(r.records)-1)
	next = append(next, r.records[:i]...)
	next = append(next, r.records[i+1:]...)

	err := r.commitLocked(next)
	metrics.ObserveRegistry("remove", err)
	if err != nil {
		return err
	}

	slog.Debug("restaurant removed", "name", name)
	return nil
}

// Increment bumps the weight of the named restaurant by one and returns the
// updated record.
func (r *Registry) Increment(name string) (types.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(name)
	if i < 0 {
		metrics.ObserveRegistry("increment", ErrNotFound)
		return types.Restaurant{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	next := types.Clone(r.records)
	next[i].Weight++

	err := r.commitLocked(next)
	metrics.ObserveRegistry("increment", err)
	if err != nil {
		return types.Restaurant{}, err
	}

	slog.Debug("restaurant weight incremented", "name", name, "weight", next[i].Weight)
	return next[i], nil
}

func (r *Registry) List() []types.Restaurant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return types.Clone(r.records)
}

func (r *Registry) IsEmpty() bool {
	return r.Len() == 0
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Choose draws from the current snapshot. It never mutates the registry.
func (r *Registry) Choose(src domain.RandomSource) (types.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chosen, err := selector.Choose(r.records, src)
	metrics.ObserveRegistry("choose", err)
	if err != nil {
		return types.Restaurant{}, err
	}

	metrics.SelectionsTotal.Inc()
	return chosen, nil
}

func (r *Registry) indexLocked(name string) int {
	for i := range r.records {
		if r.records[i].Name == name {
			return i
		}
	}
	return -1
}

func (r *Registry) commitLocked(next []types.Restaurant) error {
	if err := r.store.Save(next); err != nil {
		slog.Error("failed to persist registry snapshot", "error", err, "restaurants", len(next))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	r.records = next
	metrics.RestaurantsTotal.Set(float64(len(next)))
	return nil
}
