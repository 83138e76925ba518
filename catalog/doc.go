// Package catalog persists per-application item collections and serves them
// with a lazily built search index.
//
// # Layout
//
// Snapshots are immutable blobs named
//
//	apps/<app>/catalog-<version>-<crc32c>.json[.zst|.lz4]
//
// holding {"app", "version", "created_at", "items"}. The compression is
// inferred from the suffix. apps/<app>/CURRENT names the live snapshot
// together with its CRC32C:
//
//	apps/fenix/catalog-3-9a1c03f2.json.zst 9a1c03f2
//
// Save writes the snapshot first and then advances CURRENT, so readers see
// either the old or the new catalog. Concurrent saves write distinct blobs
// and the last pointer update wins. With the S3 DynamoDB commit store the
// pointer update is a conditional write.
//
// # Usage
//
//	store := catalog.NewStore(blobstore.NewLocalStore("/var/lib/dictionary"))
//	if _, err := store.Save(ctx, "fenix", items); err != nil {
//	    return err
//	}
//	snap, err := store.Load(ctx, "fenix")
//	cat := catalog.FromSnapshot(snap, nil)
//	hits, err := cat.Search("tags:TopSites sync")
package catalog
