package storage

import (
	"fmt"
	"log/slog"
	"time"

	"lunchbot/internal/configuration/properties"
	"lunchbot/internal/domain"
	"lunchbot/internal/metrics"
	"lunchbot/internal/types"
)

// Backend is a snapshot store that can also tell whether a snapshot was ever
// written, which the init and import commands need.
type Backend interface {
	domain.SnapshotStore
	Exists() (bool, error)
}

// Service instruments a Backend with metrics.
type Service struct {
	name    string
	backend Backend
}

var _ domain.SnapshotStore = (*Service)(nil)

func NewService(name string, backend Backend) *Service {
	return &Service{name: name, backend: backend}
}

func Open(cfg *properties.StorageConfigProperties) (*Service, error) {
	switch cfg.Backend {
	case BackendJSON, "":
		slog.Info("using JSON snapshot file", "path", cfg.Path)
		return NewService(BackendJSON, NewJSONFileStore(cfg.Path)), nil

	case BackendWAL:
		slog.Info("using WAL snapshot log", "dir", cfg.Path, "noSync", cfg.Wal.NoSync)
		s, err := OpenWALStore(cfg.Path, cfg.Wal.NoSync)
		if err != nil {
			return nil, err
		}
		return NewService(BackendWAL, s), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func (s *Service) Load() ([]types.Restaurant, error) {
	records, err := s.backend.Load()
	metrics.ObserveStorage(s.name, "load", err)
	return records, err
}

func (s *Service) Save(records []types.Restaurant) error {
	start := time.Now()
	err := s.backend.Save(records)
	metrics.StorageSaveDuration.Observe(time.Since(start).Seconds())
	metrics.ObserveStorage(s.name, "save", err)
	return err
}

func (s *Service) Close() error {
	return s.backend.Close()
}

// Initialize writes an empty snapshot unless one already exists.
func (s *Service) Initialize() error {
	exists, err := s.backend.Exists()
	if err != nil {
		return err
	}
	if exists {
		return ErrSnapshotExists
	}
	return s.Save([]types.Restaurant{})
}

// Import replaces the snapshot with records, rejecting duplicate names.
func (s *Service) Import(records []types.Restaurant) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("%w: duplicate restaurant %q", ErrSnapshotMalformed, r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	return s.Save(records)
}

func (s *Service) Backend() string {
	return s.name
}
