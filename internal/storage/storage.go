package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains the content store used for document bytes. Keys
// are namespace-scoped: "<companyID>/<storageFilename>". Implementations must
// never expose a partially-written object at its final key.

// ErrNotExist is returned by Get when no object lives at the given key.
var ErrNotExist = errors.New("storage: object does not exist")

// PutOptions define optional parameters for writing objects.
// Size should be the exact number of bytes if known; if unknown, set to -1
// and the implementation will buffer/chunk as supported by the backend.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the content store contract. Writes are atomic: a reader can
// never observe a truncated object at the canonical key. Authorization is
// the caller's responsibility; this layer only moves bytes.
type Storage interface {
	// Put writes an object under the given key, creating the namespace on
	// demand, and publishes it atomically.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
	// Get opens an object's content as a streaming reader alongside its info.
	// Returns ErrNotExist (possibly wrapped) when the key is absent.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. The bool reports whether the object
	// existed; (false, nil) is not an error, callers log it as an
	// inconsistency and proceed.
	Delete(ctx context.Context, key string) (bool, error)
}
