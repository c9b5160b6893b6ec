package registry

import (
	"errors"

	"lunchbot/internal/types"
)

type fakeStore struct {
	loadRecords []types.Restaurant
	loadErr     error

	saveErr   error
	saves     int
	lastSaved []types.Restaurant
}

func (s *fakeStore) Load() ([]types.Restaurant, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return types.Clone(s.loadRecords), nil
}

func (s *fakeStore) Save(records []types.Restaurant) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.lastSaved = types.Clone(records)
	return nil
}

func (s *fakeStore) Close() error { return nil }

var errDisk = errors.New("disk full")

type fixedSource int

func (f fixedSource) IntN(int) int { return int(f) }
