package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mozilla/glean-dictionary/model"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func day(offset int) model.Expiry {
	return model.ExpiresOn(now.AddDate(0, 0, offset))
}

func TestIsExpired(t *testing.T) {
	tests := []struct {
		name string
		item *model.Item
		want bool
	}{
		{name: "absent", item: &model.Item{Name: "a"}, want: false},
		{name: "never", item: &model.Item{Name: "a", Expires: model.NeverExpires()}, want: false},
		{name: "past date", item: &model.Item{Name: "a", Expires: model.ParseExpiry("2021-01-01")}, want: true},
		{name: "future date", item: &model.Item{Name: "a", Expires: model.ParseExpiry("3021-01-01")}, want: false},
		{name: "yesterday", item: &model.Item{Name: "a", Expires: day(-1)}, want: true},
		{name: "tomorrow", item: &model.Item{Name: "a", Expires: day(1)}, want: false},
		{
			name: "version exceeded",
			item: &model.Item{Name: "a", Expires: model.ExpiresAtVersion(99), LatestFxReleaseVersion: model.Version(100)},
			want: true,
		},
		{
			name: "version equal",
			item: &model.Item{Name: "a", Expires: model.ExpiresAtVersion(100), LatestFxReleaseVersion: model.Version(100)},
			want: false,
		},
		{
			name: "numeric string version",
			item: &model.Item{Name: "a", Expires: model.ParseExpiry("98"), LatestFxReleaseVersion: model.Version(100)},
			want: true,
		},
		{name: "version without latest", item: &model.Item{Name: "a", Expires: model.ExpiresAtVersion(1)}, want: false},
		{name: "malformed", item: &model.Item{Name: "a", Expires: model.ParseExpiry("soon")}, want: false},
		{name: "nil", item: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsExpired(tt.item, now))
		})
	}
}

func TestIsRemoved(t *testing.T) {
	assert.True(t, IsRemoved(&model.Item{InSource: model.Bool(false)}))
	assert.False(t, IsRemoved(&model.Item{}))
	assert.False(t, IsRemoved(&model.Item{InSource: model.Bool(true)}))
	assert.False(t, IsRemoved(nil))
}

func TestIsRecent(t *testing.T) {
	assert.True(t, IsRecent(&model.Item{DateFirstSeen: now.AddDate(0, 0, -3).Format(time.RFC3339)}, now))
	assert.False(t, IsRecent(&model.Item{DateFirstSeen: now.AddDate(0, 0, -31).Format(time.RFC3339)}, now))
	assert.False(t, IsRecent(&model.Item{}, now))
	assert.False(t, IsRecent(&model.Item{DateFirstSeen: "not a date"}, now))
}

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive(&model.Item{}))
	assert.True(t, IsActive(&model.Item{Active: model.Bool(true)}))
	assert.False(t, IsActive(&model.Item{Active: model.Bool(false)}))
}

func TestFilterUncollected(t *testing.T) {
	items := model.Collection{
		{Name: "metric.bestsitez", Tags: []string{"TopSites"}, Expires: day(1), InSource: model.Bool(true)},
		{Name: "metric.camel", Expires: day(1), Origin: "glean-core", InSource: model.Bool(true)},
		{Name: "metric.expired", Expires: day(-1), InSource: model.Bool(true)},
		{Name: "metric.removed", Expires: day(1), InSource: model.Bool(false)},
		{Name: "metric.versioned", Expires: model.ExpiresAtVersion(99), LatestFxReleaseVersion: model.Version(100)},
	}

	t.Run("hide uncollected", func(t *testing.T) {
		got := FilterUncollected(items, false, now)
		assert.Equal(t, []string{"metric.bestsitez", "metric.camel"}, got.Names())
	})

	t.Run("show uncollected", func(t *testing.T) {
		got := FilterUncollected(items, true, now)
		assert.Equal(t, items.Names(), got.Names())
	})

	t.Run("classifier clock", func(t *testing.T) {
		c := NewClassifier(func() time.Time { return now.AddDate(0, 0, 2) })
		got := c.FilterUncollected(items, false)
		assert.Empty(t, got)
	})
}
