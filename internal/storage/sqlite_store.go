// File: internal/storage/sqlite_store.go
package storage

import (
	"context"
	"errors"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvEntry is the single-table schema backing the SQLite store.
type kvEntry struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

func (kvEntry) TableName() string { return "kv_entries" }

type sqliteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at path and migrates
// the key-value table.
func NewSQLiteStore(path string) (KVStore, error) {
	if path == "" {
		return nil, errors.New("sqlite store path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Printf("[SQLiteStore] Failed to open database at %s: %v", path, err)
		return nil, errors.New("database error opening sqlite store")
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		log.Printf("[SQLiteStore] Migration failed: %v", err)
		return nil, errors.New("database error migrating sqlite store")
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("invalid storage key")
	}

	var entry kvEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		log.Printf("[SQLiteStore] Database error reading key %q: %v", key, err)
		return "", false, errors.New("database error reading value")
	}
	return entry.Value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("invalid storage key")
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&kvEntry{Key: key, Value: value}).Error
	if err != nil {
		log.Printf("[SQLiteStore] Database error writing key %q: %v", key, err)
		return errors.New("database error writing value")
	}
	return nil
}

func (s *sqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
