// File: internal/storage/interface.go
package storage

import "context"

// KVStore is the durable key-value collaborator the repositories persist
// against. Values are text blobs; a missing key is reported through the
// found flag, not an error.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
