package domain

import (
	"context"

	"lunchbot/internal/types"
)

type SnapshotStore interface {
	Load() ([]types.Restaurant, error)
	Save(records []types.Restaurant) error
	Close() error
}

type RandomSource interface {
	IntN(n int) int
}

type Registry interface {
	Add(name string) error
	Remove(name string) error
	Increment(name string) (types.Restaurant, error)
	List() []types.Restaurant
	IsEmpty() bool
	Choose(src RandomSource) (types.Restaurant, error)
}

// Responder posts one reply into the conversation a command came from.
type Responder interface {
	Reply(ctx context.Context, text string) error
}
