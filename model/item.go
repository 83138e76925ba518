package model

import "time"

// Item is a metric, ping or tag record.
//
// Name is the only required attribute and is unique within any collection
// handed to the search core.
type Item struct {
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Origin      string   `json:"origin,omitempty"`
	Description string   `json:"description,omitempty"`
	Expires     Expiry   `json:"expires,omitzero"`
	// InSource is nil when unknown; only an explicit false marks the item
	// as removed.
	InSource      *bool  `json:"in_source,omitempty"`
	DateFirstSeen string `json:"date_first_seen,omitempty"`
	// LatestFxReleaseVersion is the current product version, needed to
	// interpret version-encoded expiry.
	LatestFxReleaseVersion *float64 `json:"latest_fx_release_version,omitempty"`
	// Active is the legacy liveness flag. Nil means active.
	Active *bool `json:"active,omitempty"`
}

// FirstSeen returns the parsed date_first_seen value.
func (it *Item) FirstSeen() (time.Time, bool) {
	return ParseTimestamp(it.DateFirstSeen)
}

// LatestVersion returns the current product version if known.
func (it *Item) LatestVersion() (float64, bool) {
	if it.LatestFxReleaseVersion == nil {
		return 0, false
	}
	return *it.LatestFxReleaseVersion, true
}

// Bool returns a pointer to b, for the optional boolean attributes.
func Bool(b bool) *bool { return &b }

// Version returns a pointer to v, for LatestFxReleaseVersion.
func Version(v float64) *float64 { return &v }

// Collection is an ordered list of items. The search core only reorders and
// subsets collections; it never modifies the items they point to.
type Collection []*Item

// Names returns the item names in collection order.
func (c Collection) Names() []string {
	names := make([]string, len(c))
	for i, it := range c {
		names[i] = it.Name
	}
	return names
}

// ByName indexes the collection by item name. Later duplicates win.
func (c Collection) ByName() map[string]*Item {
	m := make(map[string]*Item, len(c))
	for _, it := range c {
		if it == nil {
			continue
		}
		m[it.Name] = it
	}
	return m
}

// Clone returns a shallow copy of the collection.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
