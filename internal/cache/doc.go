// Package cache provides a size-bounded LRU for loaded catalogs.
//
// Entries carry a cost (the number of items in a catalog). The cache evicts
// least recently used entries until the total cost fits its capacity, and can
// reserve that cost from a resource.Controller so that several caches share
// one item budget.
package cache
