// Package storage is the local persistence boundary of the client: a
// synchronous string-keyed value store that survives restarts. There are
// no transactions across keys; the last writer wins.
package storage

import (
	"github.com/felixgeelhaar/kopi/internal/errors"
)

// Well-known state keys.
const (
	KeyToken        = "token"
	KeyUser         = "user"
	KeyRefreshToken = "refreshToken"
	KeyCart         = "cart"
	KeyRedirectPath = "redirectPath"
	KeyTheme        = "theme"
)

// ErrKeyNotFound is returned by Get when the key has no value.
var ErrKeyNotFound = errors.New(errors.ErrCodeStateKeyNotFound, "state key not found")

// Store is a synchronous key-value store for client state.
//
// Implementations must tolerate concurrent use from a single process and
// must persist writes before returning.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases the underlying resources.
	Close() error
}
