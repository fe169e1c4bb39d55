// Package storage defines the pending authorization state store. Keys are CSRF state
// tokens, values are client session snapshots.
package storage

import (
	"context"

	interrors "github.com/jrsteele09/go-oauth2-client/internal/errors"
)

var (
	ErrNotFound = interrors.ErrNotFound
	ErrEmptyKey = interrors.ErrEmptyKey
)

// Store is a key/value store with exactly-once consumption through Drop.
//
// Get and Has may run concurrently. Set and Drop are exclusive, so when several
// callers Drop the same key only one receives the value and the rest get ErrNotFound.
type Store[V any] interface {
	// Set stores value under key and returns the value it replaced, if any.
	Set(ctx context.Context, key string, value V) (previous V, replaced bool, err error)
	// Get returns the value without removing it. ErrNotFound if absent.
	Get(ctx context.Context, key string) (V, error)
	// Drop removes and returns the value. ErrNotFound if absent.
	Drop(ctx context.Context, key string) (V, error)
	Has(ctx context.Context, key string) (bool, error)
}

// Cloner is implemented by values that hold references (slices, maps, pointers) and
// must be deep copied on the way in and out of an in-process store.
type Cloner[V any] interface {
	Clone() V
}

// Clone copies v using its Clone method when it has one.
func Clone[V any](v V) V {
	if c, ok := any(v).(Cloner[V]); ok {
		return c.Clone()
	}
	return v
}
