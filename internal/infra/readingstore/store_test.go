package readingstore

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/salinity-watch/internal/domain/monitor"
	"github.com/yanqian/salinity-watch/internal/domain/water"
)

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(3))
}

func TestValkeyStore(t *testing.T) {
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		t.Skip("VALKEY_ADDR not set")
	}
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	key := "salinity-test:" + uuid.NewString()
	t.Cleanup(func() {
		_ = client.Do(context.Background(), client.B().Del().Key(key).Build()).Error()
	})
	exerciseStore(t, NewValkeyStore(client, key, 3))
}

func TestMemoryStoreConcurrentAppendNeverExceedsCapacity(t *testing.T) {
	exerciseConcurrentAppends(t, NewMemoryStore(3))
}

func TestValkeyStoreConcurrentAppendNeverExceedsCapacity(t *testing.T) {
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		t.Skip("VALKEY_ADDR not set")
	}
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	key := "salinity-test:" + uuid.NewString()
	t.Cleanup(func() {
		_ = client.Do(context.Background(), client.B().Del().Key(key).Build()).Error()
	})
	exerciseConcurrentAppends(t, NewValkeyStore(client, key, 3))
}

func TestValkeyStoreReadsOnlyCapacity(t *testing.T) {
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		t.Skip("VALKEY_ADDR not set")
	}
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	key := "salinity-test:" + uuid.NewString()
	t.Cleanup(func() {
		_ = client.Do(context.Background(), client.B().Del().Key(key).Build()).Error()
	})
	ctx := context.Background()
	wide := NewValkeyStore(client, key, 5)
	for _, s := range []float64{1, 2, 3, 4, 5} {
		require.NoError(t, wide.Append(ctx, water.Reading{Salinity: s, Temperature: 28}))
	}

	recent, err := NewValkeyStore(client, key, 2).Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, 4.0, recent[0].Salinity)
	require.Equal(t, 5.0, recent[1].Salinity)
}

func exerciseConcurrentAppends(t *testing.T, store monitor.ReadingStore) {
	t.Helper()
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_ = store.Append(ctx, water.Reading{Salinity: float64(i), Temperature: 28})
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		recent, err := store.Recent(ctx)
		require.NoError(t, err)
		require.LessOrEqual(t, len(recent), 3)
		select {
		case <-done:
			recent, err = store.Recent(ctx)
			require.NoError(t, err)
			require.Len(t, recent, 3)
			return
		default:
		}
	}
}

func exerciseStore(t *testing.T, store monitor.ReadingStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Latest(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	recent, err := store.Recent(ctx)
	require.NoError(t, err)
	require.Empty(t, recent)

	for i, s := range []float64{1.0, 1.1, 1.2, 1.3} {
		require.NoError(t, store.Append(ctx, water.Reading{Time: string(rune('a' + i)), Salinity: s, Temperature: 28}))
	}

	recent, err = store.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, []float64{1.1, 1.2, 1.3}, []float64{recent[0].Salinity, recent[1].Salinity, recent[2].Salinity})

	latest, ok, err := store.Latest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, water.Reading{Time: "d", Salinity: 1.3, Temperature: 28}, latest)
}
