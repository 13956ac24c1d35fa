// Package store provides the key-partitioned record store the domain
// services persist through. Each key holds one serialized value array; a
// write replaces the whole array, so a value is never partially visible.
package store

import (
	"context"
)

// RecordStore is a durable key-value map. Implementations must return
// (nil, nil) from Get when the key is absent and treat Delete of a missing
// key as a no-op.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
