package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"lunchbot/internal/configuration/properties"
	"lunchbot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	js, err := Open(&properties.StorageConfigProperties{Backend: "json", Path: filepath.Join(dir, "r.json")})
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, js.Backend())

	ws, err := Open(&properties.StorageConfigProperties{Backend: "wal", Path: filepath.Join(dir, "wal")})
	require.NoError(t, err)
	defer ws.Close()
	assert.Equal(t, BackendWAL, ws.Backend())

	_, err = Open(&properties.StorageConfigProperties{Backend: "redis"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestService_Initialize(t *testing.T) {
	for _, backend := range []string{BackendJSON, BackendWAL} {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(&properties.StorageConfigProperties{Backend: backend, Path: filepath.Join(t.TempDir(), "snap")})
			require.NoError(t, err)
			defer s.Close()

			require.NoError(t, s.Initialize())
			got, err := s.Load()
			require.NoError(t, err)
			assert.Empty(t, got)

			assert.ErrorIs(t, s.Initialize(), ErrSnapshotExists)
		})
	}
}

func TestService_ImportRejectsDuplicates(t *testing.T) {
	s := NewService(BackendJSON, NewJSONFileStore(filepath.Join(t.TempDir(), "r.json")))

	err := s.Import([]types.Restaurant{{Name: "A"}, {Name: "A", Weight: 2}})
	assert.ErrorIs(t, err, ErrSnapshotMalformed)

	require.NoError(t, s.Import([]types.Restaurant{{Name: "A"}, {Name: "B", Weight: 2}}))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []types.Restaurant{{Name: "A"}, {Name: "B", Weight: 2}}, got)
}

type failingBackend struct{ err error }

func (b failingBackend) Load() ([]types.Restaurant, error) { return nil, b.err }
func (b failingBackend) Save([]types.Restaurant) error     { return b.err }
func (b failingBackend) Close() error                      { return nil }
func (b failingBackend) Exists() (bool, error)             { return false, b.err }

func TestService_PropagatesBackendErrors(t *testing.T) {
	sentinel := errors.New("io")
	s := NewService("fake", failingBackend{err: sentinel})

	_, err := s.Load()
	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, s.Save(nil), sentinel)
	assert.ErrorIs(t, s.Initialize(), sentinel)
}
