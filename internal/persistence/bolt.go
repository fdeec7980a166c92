package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

var storesBucket = []byte("stores")

// BoltStateStore keeps every store blob in a single bbolt bucket keyed by
// store name.
type BoltStateStore struct {
	db *bolt.DB
}

func NewBoltStateStore(path string) (*BoltStateStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(storesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize storage bucket: %w", err)
	}

	return &BoltStateStore{db: db}, nil
}

func (s *BoltStateStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var blob []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(storesBucket).Get([]byte(name))
		if value != nil {
			// Bolt values are only valid inside the transaction.
			blob = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load store %q: %w", name, err)
	}
	return blob, nil
}

func (s *BoltStateStore) Save(ctx context.Context, name string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(storesBucket).Put([]byte(name), blob)
	})
	if err != nil {
		return fmt.Errorf("failed to save store %q: %w", name, err)
	}
	return nil
}

func (s *BoltStateStore) Close() error {
	return s.db.Close()
}
