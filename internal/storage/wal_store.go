package storage

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"lunchbot/internal/metrics"
	"lunchbot/internal/types"

	"github.com/tidwall/wal"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const BackendWAL = "wal"

// WALStore appends each snapshot as one log record and drops the older ones.
// Only the last record is ever read back.
type WALStore struct {
	dir string
	log *wal.Log
}

func OpenWALStore(dir string, noSync bool) (*WALStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	opts := *wal.DefaultOptions
	opts.NoSync = noSync
	log, err := wal.Open(dir, &opts)
	if err != nil {
		return nil, fmt.Errorf("wal.Open: %w", err)
	}

	return &WALStore{dir: dir, log: log}, nil
}

func (s *WALStore) Load() ([]types.Restaurant, error) {
	empty, err := s.log.IsEmpty()
	if err != nil {
		return nil, fmt.Errorf("wal.IsEmpty: %w", err)
	}
	if empty {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotMissing, s.dir)
	}

	last, err := s.log.LastIndex()
	if err != nil {
		return nil, fmt.Errorf("wal.LastIndex: %w", err)
	}

	data, err := s.log.Read(last)
	if err != nil {
		return nil, fmt.Errorf("wal.Read(%d): %w", last, err)
	}

	records, err := DecodeProto(data)
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", last, err)
	}

	slog.Debug("loaded snapshot from WAL", "index", last, "restaurants", len(records))
	return records, nil
}

func (s *WALStore) Save(records []types.Restaurant) error {
	data, err := EncodeProto(records)
	if err != nil {
		return err
	}

	last, err := s.log.LastIndex()
	if err != nil {
		return fmt.Errorf("wal.LastIndex: %w", err)
	}

	next := last + 1
	if err := s.log.Write(next, data); err != nil {
		return fmt.Errorf("wal.Write(%d): %w", next, err)
	}
	metrics.StorageSnapshotSize.Set(float64(len(data)))

	if next > 1 {
		if err := s.log.TruncateFront(next); err != nil {
			slog.Warn("failed to compact snapshot log", "index", next, "error", err)
		}
	}

	return nil
}

func (s *WALStore) Exists() (bool, error) {
	empty, err := s.log.IsEmpty()
	if err != nil {
		return false, fmt.Errorf("wal.IsEmpty: %w", err)
	}
	return !empty, nil
}

func (s *WALStore) Close() error {
	if s.log != nil {
		return s.log.Close()
	}
	return nil
}

func EncodeProto(records []types.Restaurant) ([]byte, error) {
	values := make([]*structpb.Value, 0, len(records))
	for _, r := range records {
		values = append(values, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				"name":   structpb.NewStringValue(r.Name),
				"weight": structpb.NewNumberValue(float64(r.Weight)),
			},
		}))
	}

	data, err := proto.Marshal(&structpb.ListValue{Values: values})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func DecodeProto(data []byte) ([]types.Restaurant, error) {
	var list structpb.ListValue
	if err := proto.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotMalformed, err)
	}

	records := make([]types.Restaurant, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		st := v.GetStructValue()
		if st == nil {
			return nil, fmt.Errorf("%w: entry %d is not an object", ErrSnapshotMalformed, i)
		}

		name, ok := st.GetFields()["name"].GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrSnapshotMalformed, i)
		}

		weight := st.GetFields()["weight"].GetNumberValue()
		if weight < 0 || weight != math.Trunc(weight) || weight > math.MaxInt32 {
			return nil, fmt.Errorf("%w: entry %d has invalid weight %v", ErrSnapshotMalformed, i, weight)
		}

		records = append(records, types.Restaurant{Name: name.StringValue, Weight: int(weight)})
	}

	return records, nil
}
