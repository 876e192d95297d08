package storage

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/felixgeelhaar/kopi/internal/errors"
)

var stateBucket = []byte("state")

// BoltStore is a Store backed by a bbolt file.
type BoltStore struct {
	path string
	db   *bolt.DB
}

// OpenBolt creates the state file if it doesn't exist and opens it.
func OpenBolt(path string) (*BoltStore, error) {
	// Ensure the required directory structure exists.
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStateOpenFailed, "unable to create state directory", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStateOpenFailed, "unable to open state file: "+path, err).
			WithSuggestion("Check that no other kopi process is running")
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.ErrCodeStateOpenFailed, "unable to initialize state bucket", err)
	}

	return &BoltStore{path: path, db: db}, nil
}

// Get returns the value for key, or ErrKeyNotFound.
func (s *BoltStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(stateBucket).Get([]byte(key))
		if v == nil {
			return ErrKeyNotFound
		}
		// The slice is only valid inside the transaction.
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeStateReadFailed, "failed to read state key: "+key, err)
	}
	return value, nil
}

// Put stores value under key.
func (s *BoltStore) Put(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Put([]byte(key), value)
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "failed to write state key: "+key, err)
	}
	return nil
}

// Delete removes key.
func (s *BoltStore) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Delete([]byte(key))
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "failed to delete state key: "+key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the location of the state file.
func (s *BoltStore) Path() string {
	return s.path
}
