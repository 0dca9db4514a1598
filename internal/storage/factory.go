// File: internal/storage/factory.go
package storage

import "fmt"

// NewStore creates a key-value store for the configured backend.
// "sqlite" is the default for device installs; "bolt" suits single-file
// deployments; "memory" is for tests and throwaway runs.
func NewStore(storeType, path string) (KVStore, error) {
	switch storeType {
	case "sqlite":
		return NewSQLiteStore(path)
	case "bolt":
		return NewBoltStore(path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}
