package bitmap

import "github.com/RoaringBitmap/roaring/v2"

// Bitmap is a set of item ordinals backed by a 32-bit roaring bitmap.
type Bitmap struct {
	rb *roaring.Bitmap
}

// New creates an empty bitmap.
func New() *Bitmap {
	return &Bitmap{rb: roaring.New()}
}

// Range creates a bitmap holding every ordinal in [0, n).
func Range(n uint32) *Bitmap {
	b := New()
	if n > 0 {
		b.rb.AddRange(0, uint64(n))
	}
	return b
}

// Add adds an ordinal.
func (b *Bitmap) Add(id uint32) {
	b.rb.Add(id)
}

// Remove removes an ordinal.
func (b *Bitmap) Remove(id uint32) {
	b.rb.Remove(id)
}

// Contains checks if an ordinal is present.
func (b *Bitmap) Contains(id uint32) bool {
	return b.rb.Contains(id)
}

// IsEmpty returns true if the bitmap is empty.
func (b *Bitmap) IsEmpty() bool {
	return b.rb.IsEmpty()
}

// Cardinality returns the number of ordinals in the bitmap.
func (b *Bitmap) Cardinality() uint64 {
	return b.rb.GetCardinality()
}

// And intersects b with other in place.
func (b *Bitmap) And(other *Bitmap) {
	b.rb.And(other.rb)
}

// Or unions other into b in place.
func (b *Bitmap) Or(other *Bitmap) {
	b.rb.Or(other.rb)
}

// ForEach calls fn for every ordinal in ascending order until fn returns false.
func (b *Bitmap) ForEach(fn func(id uint32) bool) {
	it := b.rb.Iterator()
	for it.HasNext() {
		if !fn(it.Next()) {
			return
		}
	}
}

// RunOptimize compacts the containers once the bitmap is final.
func (b *Bitmap) RunOptimize() {
	b.rb.RunOptimize()
}

// Union returns a new bitmap holding the union of all inputs.
func Union(bs ...*Bitmap) *Bitmap {
	if len(bs) == 0 {
		return New()
	}
	rbs := make([]*roaring.Bitmap, 0, len(bs))
	for _, b := range bs {
		if b != nil {
			rbs = append(rbs, b.rb)
		}
	}
	return &Bitmap{rb: roaring.FastOr(rbs...)}
}
