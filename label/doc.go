// Package label parses structured key:value filters out of a raw search
// query and applies them to an item collection.
//
// A query such as
//
//	three tags:Foo tags:"Multi word" origin:sync
//
// yields the labels tags=[Foo, Multi word] and origin=[sync] plus the free
// text "three". Which keys are recognized, and how each key matches an item,
// is set by a Config. Tokens whose prefix is not a configured key stay free
// text.
//
// Filtering intersects the per-key matches: values of one key are ANDed and
// different keys are intersected. Keys with the routed strategy (expires in
// DefaultConfig) are never matched here; the query engine hands their value
// to the expiration window filter instead.
package label
