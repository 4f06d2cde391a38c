package storage

import "errors"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage closed")

// KV is a string-keyed store of string values, the persistence surface the
// note list is mirrored to.
type KV interface {
	// Get returns the value for key. ok is false when the key is missing.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
