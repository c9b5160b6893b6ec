package storage

import "errors"

var (
	ErrSnapshotMissing   = errors.New("snapshot does not exist")
	ErrSnapshotMalformed = errors.New("snapshot is malformed")
	ErrSnapshotExists    = errors.New("snapshot already exists")
	ErrUnknownBackend    = errors.New("unknown storage backend")
)
