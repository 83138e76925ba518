// Package dictionary is the search core of a data dictionary for telemetry
// metadata: applications, metrics, pings and tags.
//
// It filters and ranks items with a query language mixing free text and
// labels:
//
//	d, _ := dictionary.New()
//	hits, err := d.Search(ctx, `tags:TopSites origin:sync "bookmark count"`, items)
//
// Recognized labels are tags:, origin:, type:, name: and expires:. Unknown
// keys are searched as free text. Several values for one key must all match.
// Free text matches by token prefix across the id, tags, type, origin and
// description fields, and a quoted phrase must appear as written. Results are
// ordered by relevance; a query without free text keeps the input order.
//
// # Lifecycle
//
// FilterByLifecycle hides items that have expired (by date or by product
// version) or were removed from source. FilterByExpirationWindow lists items
// expiring within a number of months, or those that never expire:
//
//	soon, err := d.FilterByExpirationWindow(items, "6")
//
// # Catalogs
//
// Items can be imported per application into a snapshot store and searched
// by name. Catalogs are loaded on demand, indexed once and cached:
//
//	store := blobstore.NewLocalStore("/var/lib/dictionary")
//	d, _ := dictionary.New(dictionary.WithStore(store))
//	_, err := d.Import(ctx, "fenix", items)
//	hits, err := d.SearchApp(ctx, "fenix", "expires:never sync")
//
// S3 (with an optional DynamoDB commit pointer) and MinIO stores live in
// blobstore/s3 and blobstore/minio.
//
// # Ranking
//
// Rank orders hits by liveness and, for restrictive callers, by the metric
// types GLAM supports. LegacySearch adds a fuzzy hit producer in front.
package dictionary
