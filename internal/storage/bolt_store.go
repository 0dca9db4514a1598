// File: internal/storage/bolt_store.go
package storage

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("companion_store")

type boltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) a Bolt database file at path. All values
// live in a single bucket; the bucket is created up front so reads never
// have to special-case a missing bucket.
func NewBoltStore(path string) (KVStore, error) {
	if path == "" {
		return nil, errors.New("bolt store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		log.Printf("[BoltStore] Failed to open database at %s: %v", path, err)
		return nil, errors.New("database error opening bolt store")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		log.Printf("[BoltStore] Failed to create bucket: %v", err)
		return nil, errors.New("database error initializing bolt store")
	}

	return &boltStore{db: db}, nil
}

func (s *boltStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("invalid storage key")
	}

	var value string
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(boltBucket).Get([]byte(key))
		if raw != nil {
			value = string(raw)
			found = true
		}
		return nil
	})
	if err != nil {
		log.Printf("[BoltStore] Database error reading key %q: %v", key, err)
		return "", false, errors.New("database error reading value")
	}
	return value, found, nil
}

func (s *boltStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return errors.New("invalid storage key")
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		log.Printf("[BoltStore] Database error writing key %q: %v", key, err)
		return errors.New("database error writing value")
	}
	return nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}
