// Package storage provides the blob-store abstraction used for title
// attachments: upload validation, deterministic key derivation and a
// capability interface with MinIO, filesystem and in-memory implementations.
package storage

import (
	"context"
	"time"
)

// PutResult carries the store-assigned properties of an uploaded object.
type PutResult struct {
	// URL is the full unsigned address of the object.
	URL string
	// IntegrityTag is the store's entity tag for the object. Used for
	// change detection, never for locking.
	IntegrityTag string
}

// BlobStore is the capability interface over a remote object store. Production
// implementations adapt a vendor SDK; tests use MemoryStore.
type BlobStore interface {
	// EnsureContainer idempotently creates the target container. Called once
	// at startup; a failure means the process cannot serve uploads.
	EnsureContainer(ctx context.Context) error

	// Put uploads data under key, overwriting any existing object, and
	// records contentType on it.
	Put(ctx context.Context, key string, data []byte, contentType string) (PutResult, error)

	// Delete removes the object. Deleting a missing object is a no-op.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// SignedURL returns a read-only URL valid for ttl from now. Returns a
	// NOT_FOUND error when the object does not exist.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// List returns the keys of all objects under prefix. Used by the
	// orphaned-blob reconciliation sweep.
	List(ctx context.Context, prefix string) ([]string, error)
}
