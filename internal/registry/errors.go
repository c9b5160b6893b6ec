package registry

import (
	"errors"

	"lunchbot/internal/selector"
)

var (
	ErrNotFound      = errors.New("restaurant not found")
	ErrAlreadyExists = errors.New("restaurant already exists")
	ErrPersistence   = errors.New("snapshot persistence failed")
	ErrEmptyRegistry = selector.ErrEmptyRegistry
)
