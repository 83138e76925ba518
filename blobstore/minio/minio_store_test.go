package minio

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozilla/glean-dictionary/blobstore"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := getenv("MINIO_ENDPOINT", "localhost:9000")
	bucket := "test-dictionary"

	store, err := New(endpoint, getenv("MINIO_ACCESS_KEY", "minioadmin"), getenv("MINIO_SECRET_KEY", "minioadmin"), false, bucket, "test-prefix/")
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "apps/fenix/CURRENT", data))

	blob, err := store.Open(ctx, "apps/fenix/CURRENT")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	part := make([]byte, 5)
	n, err := blob.ReadAt(ctx, part, 6)
	require.NoError(t, err)
	assert.Equal(t, "minio", string(part[:n]))

	tail := make([]byte, 10)
	n, err = blob.ReadAt(ctx, tail, 12)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "world", string(tail[:n]))
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "apps/")
	require.NoError(t, err)
	assert.Contains(t, names, "apps/fenix/CURRENT")

	require.NoError(t, store.Delete(ctx, "apps/fenix/CURRENT"))
	_, err = store.Open(ctx, "apps/fenix/CURRENT")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	require.NoError(t, store.Delete(ctx, "apps/fenix/CURRENT"))
}
