// Package lexical defines the full-text index contract used by the query
// engine, together with the field set and the query clause grammar shared by
// implementations.
//
// # Query syntax
//
// A query is a list of clauses separated by whitespace. A bare word is split
// into tokens on any rune that is not a letter or digit, and every token is a
// clause of its own that matches indexed tokens starting with it:
//
//	top        matches "TopSites"
//	a.b        two clauses, "a" and "b"
//
// A double-quoted run is a phrase clause. It matches a keyword field whose
// whole value equals the phrase, or a text field that contains it, ignoring
// case:
//
//	"Tag with spaces"
//
// Every clause must match at least one field of an item for the item to be
// returned.
//
// # Built-in Implementation
//
// The forward subpackage provides an in-memory inverted index with prefix
// lookups over a sorted term dictionary:
//
//	idx := forward.Build(items)
//	keys, _ := idx.Search("top", lexical.SearchOptions{})
//
// Search results are never capped unless SearchOptions.Limit asks for it.
package lexical
