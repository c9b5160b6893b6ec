package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"lunchbot/internal/metrics"
	"lunchbot/internal/types"
)

const BackendJSON = "json"

// JSONFileStore keeps the registry as a single JSON array that is rewritten on
// every Save. The file layout matches restaurants.json: [{"name":..,"weight":..}].
type JSONFileStore struct {
	path string
}

func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

func (s *JSONFileStore) Path() string {
	return s.path
}

func (s *JSONFileStore) Load() ([]types.Restaurant, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotMissing, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	return DecodeJSON(raw)
}

func (s *JSONFileStore) Save(records []types.Restaurant) error {
	raw, err := EncodeJSON(records)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, raw, 0o640); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	metrics.StorageSnapshotSize.Set(float64(len(raw)))
	return nil
}

func (s *JSONFileStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (s *JSONFileStore) Close() error { return nil }

func EncodeJSON(records []types.Restaurant) ([]byte, error) {
	raw, err := json.Marshal(types.Clone(records))
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

// DecodeJSON accepts only a top-level array. Unknown fields are ignored so
// snapshots written by older bots still load.
func DecodeJSON(raw []byte) ([]types.Restaurant, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrSnapshotMalformed)
	}

	var records []types.Restaurant
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotMalformed, err)
	}

	for _, r := range records {
		if r.Weight < 0 {
			return nil, fmt.Errorf("%w: negative weight for %q", ErrSnapshotMalformed, r.Name)
		}
	}

	return types.Clone(records), nil
}
