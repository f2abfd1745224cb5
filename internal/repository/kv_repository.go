package repository

import (
	"context"
)

// KeyValueRepository stores opaque string values under string keys.
// Put overwrites; there is no merge and no versioning.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
