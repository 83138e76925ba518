// Package query combines label filtering, full-text search and the
// expiration window into a single search call.
//
//	eng := query.New()
//	idx := eng.BuildIndex(items)
//	res, err := eng.Search("three tags:Foo origin:sync", items, idx)
//
// Label-only queries return matches in collection order. Queries with free
// text return matches in relevance order, restricted to the items that pass
// the labels. An expires: label selects the items expiring within that many
// months (or "never").
package query
