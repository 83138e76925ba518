// Package bitmap wraps roaring bitmaps for the posting lists and filter sets
// used by the search core.
//
// Every collection handed to the core is addressed by item ordinal: the
// position of the item in the collection. Posting lists of the full-text
// index and the per-label match sets of the label filter are bitmaps over
// those ordinals, so intersections and unions stay cheap even for
// collections in the tens of thousands.
//
//	all := bitmap.Range(uint32(len(items)))
//	tagged := bitmap.New()
//	tagged.Add(3)
//	all.And(tagged)
package bitmap
