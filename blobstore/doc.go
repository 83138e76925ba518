// Package blobstore provides storage for catalog snapshots.
//
// BlobStore is the interface for reading and writing named, immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and throwaway runs
//   - LocalStore: local filesystem, reads through mmap
//   - s3.Store: Amazon S3, with s3.DDBCommitStore for atomic CURRENT pointers
//   - minio.Store: MinIO and other S3-compatible servers
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Open must return an error satisfying errors.Is(err, ErrNotFound) for a
// missing blob.
package blobstore
