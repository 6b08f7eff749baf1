package readingstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/salinity-watch/internal/domain/monitor"
	"github.com/yanqian/salinity-watch/internal/domain/water"
)

// ValkeyStore shares the window between replicas as a capped Valkey list.
type ValkeyStore struct {
	client   valkey.Client
	key      string
	capacity int64
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, key string, capacity int) *ValkeyStore {
	if key == "" {
		key = "salinity:readings"
	}
	if capacity <= 0 {
		capacity = water.DefaultWindowSize
	}
	return &ValkeyStore{client: client, key: key, capacity: int64(capacity)}
}

// Append pushes the reading and trims the list back to capacity in one
// MULTI/EXEC transaction.
func (s *ValkeyStore) Append(ctx context.Context, reading water.Reading) error {
	payload, err := json.Marshal(reading)
	if err != nil {
		return err
	}
	cmds := valkey.Commands{
		s.client.B().Multi().Build(),
		s.client.B().Rpush().Key(s.key).Element(string(payload)).Build(),
		s.client.B().Ltrim().Key(s.key).Start(-s.capacity).Stop(-1).Build(),
		s.client.B().Exec().Build(),
	}
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

// Recent reads only the newest capacity entries, so a list written by a
// replica with a larger window never leaks extra readings.
func (s *ValkeyStore) Recent(ctx context.Context) ([]water.Reading, error) {
	resp := s.client.Do(ctx, s.client.B().Lrange().Key(s.key).Start(-s.capacity).Stop(-1).Build())
	items, err := resp.AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return []water.Reading{}, nil
		}
		return nil, err
	}
	out := make([]water.Reading, 0, len(items))
	for i, item := range items {
		r, err := decode(item)
		if err != nil {
			return nil, fmt.Errorf("decode reading %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Latest implements monitor.ReadingStore.
func (s *ValkeyStore) Latest(ctx context.Context) (water.Reading, bool, error) {
	resp := s.client.Do(ctx, s.client.B().Lindex().Key(s.key).Index(-1).Build())
	payload, err := resp.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return water.Reading{}, false, nil
		}
		return water.Reading{}, false, err
	}
	r, err := decode(payload)
	if err != nil {
		return water.Reading{}, false, err
	}
	return r, true, nil
}

func decode(payload string) (water.Reading, error) {
	var r water.Reading
	err := json.Unmarshal([]byte(payload), &r)
	return r, err
}

var _ monitor.ReadingStore = (*ValkeyStore)(nil)
