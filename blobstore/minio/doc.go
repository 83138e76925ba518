// Package minio provides a BlobStore for MinIO and other S3-compatible
// object stores (Ceph, Garage, SeaweedFS) using the MinIO Go client.
//
//	store, err := minioblob.New("localhost:9000", "minioadmin", "minioadmin", false, "dictionary", "catalogs/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d, err := dictionary.New(dictionary.WithStore(store))
package minio
