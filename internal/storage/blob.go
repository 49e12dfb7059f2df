package storage

import "context"

// BlobStore persists raw uploaded files. Keys are tenant-prefixed,
// ASCII-safe paths generated by the ingestion workflow; the original
// filename never appears in a key.
//
// Implementations: blob.LocalStore (development, tests) and blob.S3Store.
type BlobStore interface {
	// Put writes data at key, overwriting any existing object.
	Put(ctx context.Context, key string, data []byte) error

	// Get reads the object at key.
	Get(ctx context.Context, key string) ([]byte, error)
}
