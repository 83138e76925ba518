package bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(b *Bitmap) []uint32 {
	var out []uint32
	b.ForEach(func(id uint32) bool {
		out = append(out, id)
		return true
	})
	return out
}

func of(values ...uint32) *Bitmap {
	b := New()
	for _, v := range values {
		b.Add(v)
	}
	return b
}

func TestBitmap_SetOps(t *testing.T) {
	all := Range(6)
	assert.Equal(t, uint64(6), all.Cardinality())

	all.And(of(1, 3, 5))
	all.And(of(3, 4, 5))
	assert.Equal(t, []uint32{3, 5}, ids(all))

	u := Union(of(1, 3), of(3, 4), nil)
	assert.Equal(t, []uint32{1, 3, 4}, ids(u))

	u.Or(of(9))
	assert.Equal(t, []uint32{1, 3, 4, 9}, ids(u))
}

func TestBitmap_UnionDoesNotAlias(t *testing.T) {
	a := of(1)
	u := Union(a)
	u.Add(2)
	assert.Equal(t, []uint32{1}, ids(a))
}

func TestBitmap_Empty(t *testing.T) {
	assert.True(t, Range(0).IsEmpty())
	assert.True(t, Union().IsEmpty())

	b := New()
	b.Add(7)
	assert.True(t, b.Contains(7))
	b.Remove(7)
	assert.True(t, b.IsEmpty())
}

func TestBitmap_ForEachStops(t *testing.T) {
	var seen []uint32
	Range(100).ForEach(func(id uint32) bool {
		seen = append(seen, id)
		return id < 2
	})
	assert.Equal(t, []uint32{0, 1, 2}, seen)
}

func TestBitmap_RunOptimize(t *testing.T) {
	b := Range(70000)
	b.RunOptimize()
	assert.Equal(t, uint64(70000), b.Cardinality())
	assert.True(t, b.Contains(69999))
}
