// Package forward provides an in-memory, prefix-matching inverted index over
// an item collection.
//
// Each field keeps a sorted dictionary of lowercase tokens with a roaring
// bitmap of item ordinals per token. A term clause binary-searches the
// dictionary and unions the postings of every token that starts with it, so
// "top" finds "TopSites" without storing every prefix. Phrase clauses are
// answered from normalized whole values.
//
// An Index is immutable after Build and safe for concurrent searches. Build a
// new one whenever the collection changes.
package forward
