package command

import (
	"lunchbot/internal/domain"
	"lunchbot/internal/registry"
	"lunchbot/internal/selector"
	"lunchbot/internal/types"
)

// memRegistry mirrors registry.Registry semantics without a store so handler
// tests can inject failures.
type memRegistry struct {
	records []types.Restaurant
	saveErr error
}

func (m *memRegistry) index(name string) int {
	for i, r := range m.records {
		if r.Name == name {
			return i
		}
	}
	return -1
}

func (m *memRegistry) Add(name string) error {
	if m.index(name) >= 0 {
		return registry.ErrAlreadyExists
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append(m.records, types.Restaurant{Name: name})
	return nil
}

func (m *memRegistry) Remove(name string) error {
	i := m.index(name)
	if i < 0 {
		return registry.ErrNotFound
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append(m.records[:i:i], m.records[i+1:]...)
	return nil
}

func (m *memRegistry) Increment(name string) (types.Restaurant, error) {
	i := m.index(name)
	if i < 0 {
		return types.Restaurant{}, registry.ErrNotFound
	}
	if m.saveErr != nil {
		return types.Restaurant{}, m.saveErr
	}
	m.records[i].Weight++
	return m.records[i], nil
}

func (m *memRegistry) List() []types.Restaurant {
	return types.Clone(m.records)
}

func (m *memRegistry) IsEmpty() bool {
	return len(m.records) == 0
}

func (m *memRegistry) Choose(src domain.RandomSource) (types.Restaurant, error) {
	return selector.Choose(m.records, src)
}

type fixedSource int

func (f fixedSource) IntN(int) int { return int(f) }
