package monitor

import (
	"context"

	"github.com/yanqian/salinity-watch/internal/domain/water"
)

// ReadingStore holds the rolling window of recent readings, oldest first.
type ReadingStore interface {
	Append(ctx context.Context, reading water.Reading) error
	Recent(ctx context.Context) ([]water.Reading, error)
	Latest(ctx context.Context) (water.Reading, bool, error)
}
