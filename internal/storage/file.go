package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

// FileKV keeps each key in its own <dir>/<key>.json file. Writes replace the
// file atomically.
type FileKV struct {
	dir    string
	mu     sync.RWMutex
	closed bool
}

// NewFileKV returns a file store rooted at dir, creating dir if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating storage dir: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (s *FileKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrClosed
	}
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error reading %s: %w", path, err)
	}
	return string(data), true, nil
}

func (s *FileKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(value)); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

func (s *FileKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing %s: %w", path, err)
	}
	return nil
}

func (s *FileKV) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FileKV) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
