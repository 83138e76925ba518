package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/mozilla/glean-dictionary/blobstore"
)

// CurrentName is the base name of pointer blobs kept in DynamoDB.
const CurrentName = "CURRENT"

// DDBCommitStore implements blobstore.BlobStore backed by S3, with DynamoDB
// holding every CURRENT pointer so that publishing a catalog is an atomic
// compare-and-swap.
//
// Each pointer blob (a name whose base is CURRENT, such as
// "apps/fenix/CURRENT") is its own commit log. Writing the pointer inserts
// the next version with a conditional put; reading it returns the newest
// version. Every other name goes straight to S3.
//
// Table schema:
//   - Partition key: base_uri (string) - baseURI plus the pointer directory
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name dictionary-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBCommitStore struct {
	s3Store   *Store
	ddbClient DDBClient
	tableName string
	baseURI   string
}

var _ blobstore.BlobStore = (*DDBCommitStore)(nil)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

var _ DDBClient = (*dynamodb.Client)(nil)

// ErrConcurrentModification is returned when another writer committed the
// same pointer version first.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// NewDDBCommitStore creates a new S3+DynamoDB commit store.
// baseURI ("s3://bucket/prefix") namespaces the partition keys.
func NewDDBCommitStore(s3Store *Store, ddbClient DDBClient, tableName, baseURI string) *DDBCommitStore {
	return &DDBCommitStore{
		s3Store:   s3Store,
		ddbClient: ddbClient,
		tableName: tableName,
		baseURI:   strings.TrimSuffix(baseURI, "/"),
	}
}

// IsPointer reports whether name is stored in DynamoDB.
func IsPointer(name string) bool {
	return path.Base(name) == CurrentName
}

func (s *DDBCommitStore) partition(name string) string {
	dir := path.Dir(name)
	if dir == "." {
		return s.baseURI
	}
	return s.baseURI + "/" + dir
}

// Open opens a blob for reading. Pointers resolve to their newest version.
func (s *DDBCommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if !IsPointer(name) {
		return s.s3Store.Open(ctx, name)
	}
	version, target, err := s.latest(ctx, s.partition(name))
	if err != nil {
		return nil, err
	}
	if version == 0 {
		return nil, blobstore.ErrNotFound
	}
	return &pointerBlob{content: []byte(target)}, nil
}

// Put writes a blob. Pointers are committed with a conditional write and
// fail with ErrConcurrentModification when another writer won the race.
func (s *DDBCommitStore) Put(ctx context.Context, name string, data []byte) error {
	if IsPointer(name) {
		return s.commit(ctx, s.partition(name), string(data))
	}
	return s.s3Store.Put(ctx, name, data)
}

// Delete deletes a blob. Deleting a pointer removes its whole history.
func (s *DDBCommitStore) Delete(ctx context.Context, name string) error {
	if !IsPointer(name) {
		return s.s3Store.Delete(ctx, name)
	}
	partition := s.partition(name)
	versions, err := s.versions(ctx, partition)
	if err != nil {
		return err
	}
	for _, v := range versions {
		_, err := s.ddbClient.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.tableName),
			Key: map[string]types.AttributeValue{
				"base_uri": &types.AttributeValueMemberS{Value: partition},
				"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(v, 10)},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to delete version %d: %w", v, err)
		}
	}
	return nil
}

// List lists blobs with prefix. Pointers are not listed.
func (s *DDBCommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.s3Store.List(ctx, prefix)
}

// latest queries DynamoDB for the newest committed version.
func (s *DDBCommitStore) latest(ctx context.Context, partition string) (uint64, string, error) {
	resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: partition},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	version, err := parseVersion(item)
	if err != nil {
		return 0, "", err
	}
	target, ok := item["target"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid target attribute in DynamoDB")
	}
	return version, target.Value, nil
}

func (s *DDBCommitStore) versions(ctx context.Context, partition string) ([]uint64, error) {
	var (
		out   []uint64
		start map[string]types.AttributeValue
	)
	for {
		resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("base_uri = :uri"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":uri": &types.AttributeValueMemberS{Value: partition},
			},
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query DynamoDB: %w", err)
		}
		for _, item := range resp.Items {
			v, err := parseVersion(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if len(resp.LastEvaluatedKey) == 0 {
			return out, nil
		}
		start = resp.LastEvaluatedKey
	}
}

func parseVersion(item map[string]types.AttributeValue) (uint64, error) {
	attr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.New("invalid version attribute in DynamoDB")
	}
	v, err := strconv.ParseUint(attr.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse version: %w", err)
	}
	return v, nil
}

// commit inserts the next pointer version with a conditional write.
func (s *DDBCommitStore) commit(ctx context.Context, partition, target string) error {
	current, _, err := s.latest(ctx, partition)
	if err != nil {
		return err
	}

	_, err = s.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri": &types.AttributeValueMemberS{Value: partition},
			"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(current+1, 10)},
			"target":   &types.AttributeValueMemberS{Value: target},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}
	return nil
}

// pointerBlob is an in-memory blob holding a resolved pointer.
type pointerBlob struct {
	content []byte
}

func (b *pointerBlob) Close() error {
	return nil
}

func (b *pointerBlob) Size() int64 {
	return int64(len(b.content))
}

func (b *pointerBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off >= int64(len(b.content)) {
		return 0, io.EOF
	}
	n := copy(p, b.content[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
