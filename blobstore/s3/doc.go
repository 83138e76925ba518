// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "glean-dictionary", "catalogs/")
//
// S3 has no compare-and-swap, so two importers publishing a catalog at the
// same time could both overwrite an app's CURRENT pointer. DDBCommitStore
// keeps CURRENT pointers in DynamoDB with conditional writes instead:
//
//	commits := s3.NewDDBCommitStore(store, dynamodb.NewFromConfig(cfg),
//	    "dictionary-commits", "s3://glean-dictionary/catalogs")
//
// # Features
//
//   - Range reads
//   - Multipart uploads through the s3 transfer manager, with CRC32C checksums
//   - Automatic pagination for listing
//   - Configurable key prefix
package s3
