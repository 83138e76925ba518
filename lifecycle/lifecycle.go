package lifecycle

import (
	"time"

	"github.com/mozilla/glean-dictionary/model"
)

// RecentWindow is how long after its first sighting an item counts as new.
const RecentWindow = 30 * 24 * time.Hour

// IsExpired reports whether the item has expired at now.
//
// Version-encoded expiry needs the item's latest product version; without it
// the item is treated as not expired. Date-encoded expiry expires once now is
// after the date. Never, absent and malformed values never expire.
func IsExpired(item *model.Item, now time.Time) bool {
	if item == nil {
		return false
	}
	switch item.Expires.Kind {
	case model.ExpiryVersion:
		latest, ok := item.LatestVersion()
		if !ok {
			return false
		}
		return latest > item.Expires.Version
	case model.ExpiryDate:
		return now.After(item.Expires.Date)
	default:
		return false
	}
}

// IsRemoved reports whether the item is no longer present in source.
// Only an explicit in_source=false counts.
func IsRemoved(item *model.Item) bool {
	return item != nil && item.InSource != nil && !*item.InSource
}

// IsRecent reports whether the item was first seen less than RecentWindow
// before now. Items without a parsable date_first_seen are not recent.
func IsRecent(item *model.Item, now time.Time) bool {
	if item == nil {
		return false
	}
	seen, ok := item.FirstSeen()
	if !ok {
		return false
	}
	return now.Sub(seen) < RecentWindow
}

// IsActive reports the legacy liveness flag. A missing flag means active.
func IsActive(item *model.Item) bool {
	return item != nil && (item.Active == nil || *item.Active)
}

// FilterUncollected drops expired and removed items unless
// showRemovedOrExpired is set. Order is preserved and the input is not
// modified.
func FilterUncollected(items model.Collection, showRemovedOrExpired bool, now time.Time) model.Collection {
	if showRemovedOrExpired {
		return items.Clone()
	}
	out := make(model.Collection, 0, len(items))
	for _, it := range items {
		if it == nil || IsExpired(it, now) || IsRemoved(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Classifier evaluates the predicates against a clock.
type Classifier struct {
	Now func() time.Time
}

// NewClassifier returns a Classifier using now, or time.Now when now is nil.
func NewClassifier(now func() time.Time) Classifier {
	if now == nil {
		now = time.Now
	}
	return Classifier{Now: now}
}

func (c Classifier) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// IsExpired reports whether the item has expired.
func (c Classifier) IsExpired(item *model.Item) bool { return IsExpired(item, c.now()) }

// IsRemoved reports whether the item was removed from source.
func (c Classifier) IsRemoved(item *model.Item) bool { return IsRemoved(item) }

// IsRecent reports whether the item was first seen recently.
func (c Classifier) IsRecent(item *model.Item) bool { return IsRecent(item, c.now()) }

// FilterUncollected applies FilterUncollected at the classifier's clock.
func (c Classifier) FilterUncollected(items model.Collection, showRemovedOrExpired bool) model.Collection {
	return FilterUncollected(items, showRemovedOrExpired, c.now())
}
