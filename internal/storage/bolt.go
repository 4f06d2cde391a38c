package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketJotter = []byte("jotter")

// BoltKV stores keys in a single bucket of a bbolt database.
type BoltKV struct {
	db *bolt.DB
	mu sync.Mutex
}

// NewBoltKV opens (or creates) the database at path.
func NewBoltKV(path string) (*BoltKV, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("storage db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketJotter)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltKV{db: db}, nil
}

func (s *BoltKV) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return "", false, ErrClosed
	}
	var (
		value string
		ok    bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketJotter)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(key))
		if raw == nil {
			return nil
		}
		value = string(raw)
		ok = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return value, ok, nil
}

func (s *BoltKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrClosed
	}
	if key == "" {
		return errors.New("storage key is required")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketJotter)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

func (s *BoltKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketJotter)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

func (s *BoltKV) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
