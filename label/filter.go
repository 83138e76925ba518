package label

import (
	"github.com/mozilla/glean-dictionary/internal/bitmap"
	"github.com/mozilla/glean-dictionary/model"
)

// Filter returns the items matching every label, in collection order.
//
// Each key with at least one value narrows a running set of item ordinals.
// Routed keys and keys not in the config are ignored. With no applicable
// labels the result is every non-nil item. The input is not modified.
func (c *Config) Filter(items model.Collection, labels []Label) model.Collection {
	return c.Select(items, labels).Collect(items)
}

// Select is Filter returning the matching ordinals.
func (c *Config) Select(items model.Collection, labels []Label) Selection {
	keep := bitmap.Range(uint32(len(items)))
	for i, it := range items {
		if it == nil {
			keep.Remove(uint32(i))
		}
	}

	for _, r := range c.Rules() {
		if keep.IsEmpty() {
			break
		}
		if r.Strategy == StrategyRouted {
			continue
		}
		values := valuesFor(labels, r.Key)
		if len(values) == 0 {
			continue
		}
		matched := bitmap.New()
		keep.ForEach(func(id uint32) bool {
			if r.Match(items[id], values) {
				matched.Add(id)
			}
			return true
		})
		keep.And(matched)
	}
	return Selection{set: keep}
}

// Selection is a set of item ordinals produced by Select.
type Selection struct {
	set *bitmap.Bitmap
}

// Contains reports whether ordinal i was selected.
func (s Selection) Contains(i int) bool {
	return s.set != nil && i >= 0 && s.set.Contains(uint32(i))
}

// Len returns the number of selected items.
func (s Selection) Len() int {
	if s.set == nil {
		return 0
	}
	return int(s.set.Cardinality())
}

// Collect returns the selected items in collection order.
func (s Selection) Collect(items model.Collection) model.Collection {
	out := make(model.Collection, 0, s.Len())
	if s.set == nil {
		return out
	}
	s.set.ForEach(func(id uint32) bool {
		if int(id) < len(items) {
			out = append(out, items[id])
		}
		return true
	})
	return out
}

func valuesFor(labels []Label, key Key) []string {
	return Query{Labels: labels}.Values(key)
}
