// Package storage defines the blob store contract used by the media
// pipeline. Adapters live in subpackages (s3 for production, memory for
// tests) and are wired through the Store interface.
package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by Get when no object exists under the key.
var ErrObjectNotFound = errors.New("storage: object not found")

// Object is a stored blob together with the attributes persisted beside it.
type Object struct {
	Key         string
	Content     []byte
	ContentType string
	Metadata    map[string]string
}

// Store is a flat key/value blob store. Keys are opaque strings; prefix
// listing is the only structure the pipeline relies on.
type Store interface {
	// Put writes the object under obj.Key, replacing any previous content.
	Put(ctx context.Context, obj Object) error

	// Get returns the object stored under key, or ErrObjectNotFound.
	Get(ctx context.Context, key string) (Object, error)

	// List returns the keys that start with prefix, in no particular order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
