package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mozilla/glean-dictionary/blobstore"
)

func TestStore_OpenNotFound(t *testing.T) {
	client := new(MockS3Client)
	client.On("HeadObject", mock.Anything, mock.Anything).Return(nil, &types.NotFound{})

	store := NewStore(client, "bucket", "/catalogs/")
	_, err := store.Open(context.Background(), "apps/fenix/CURRENT")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	in := client.Calls[0].Arguments.Get(1).(*s3.HeadObjectInput)
	assert.Equal(t, "catalogs/apps/fenix/CURRENT", aws.ToString(in.Key))
	assert.Equal(t, "bucket", aws.ToString(in.Bucket))
}

func TestStore_OpenAndReadAt(t *testing.T) {
	client := new(MockS3Client)
	client.On("HeadObject", mock.Anything, mock.Anything).
		Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(11)}, nil)
	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Range) == "bytes=6-10"
	})).Return(&s3.GetObjectOutput{Body: bodyOf("world")}, nil)

	store := NewStore(client, "bucket", "")
	blob, err := store.Open(context.Background(), "hello.txt")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(11), blob.Size())

	buf := make([]byte, 10)
	n, err := blob.ReadAt(context.Background(), buf, 6)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "world", string(buf[:n]))

	_, err = blob.ReadAt(context.Background(), buf, 11)
	assert.ErrorIs(t, err, io.EOF)
	client.AssertNumberOfCalls(t, "GetObject", 1)
}

func TestStore_Put(t *testing.T) {
	client := new(MockS3Client)
	client.On("PutObject", mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil)

	store := NewStore(client, "bucket", "catalogs")
	require.NoError(t, store.Put(context.Background(), "apps/fenix/catalog-1.json.zst", []byte("payload")))

	assert.Equal(t, []byte("payload"), client.Uploaded["catalogs/apps/fenix/catalog-1.json.zst"])
	in := client.Calls[0].Arguments.Get(1).(*s3.PutObjectInput)
	assert.Equal(t, types.ChecksumAlgorithmCrc32c, in.ChecksumAlgorithm)
}

func TestStore_PutError(t *testing.T) {
	client := new(MockS3Client)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	store := NewStore(client, "bucket", "")
	err := store.Put(context.Background(), "a", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload a")
}

func TestStore_Delete(t *testing.T) {
	client := new(MockS3Client)
	client.On("DeleteObject", mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()
	client.On("DeleteObject", mock.Anything, mock.Anything).Return(nil, errors.New("denied")).Once()

	store := NewStore(client, "bucket", "")
	assert.NoError(t, store.Delete(context.Background(), "missing"))
	assert.EqualError(t, store.Delete(context.Background(), "locked"), "denied")
}

func TestStore_List(t *testing.T) {
	client := new(MockS3Client)
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.Prefix) == "catalogs/apps/"
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("catalogs/apps/glam/catalog-2.json.zst")},
			{Key: aws.String("catalogs/apps/fenix/catalog-1.json.zst")},
		},
	}, nil)

	store := NewStore(client, "bucket", "catalogs")
	names, err := store.List(context.Background(), "apps/")
	require.NoError(t, err)
	assert.Equal(t, []string{"apps/fenix/catalog-1.json.zst", "apps/glam/catalog-2.json.zst"}, names)
	assert.Equal(t, "bucket", store.Bucket())
	assert.Equal(t, "catalogs", store.Prefix())
}
