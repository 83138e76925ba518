package expiration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozilla/glean-dictionary/model"
)

var now = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func fixture() model.Collection {
	return model.Collection{
		{Name: "metric.expired", Expires: model.ExpiresOn(now.AddDate(0, 0, -1))},
		{Name: "metric.1", Expires: model.ExpiresAtVersion(99), LatestFxReleaseVersion: model.Version(100)},
		{Name: "metric.2", Expires: model.ExpiresOn(now.AddDate(0, 6, 0)), LatestFxReleaseVersion: model.Version(100)},
		{Name: "metric.3", Expires: model.ExpiresOn(now.AddDate(0, 12, 0)), LatestFxReleaseVersion: model.Version(100)},
		{Name: "metric.4", Expires: model.ExpiresAtVersion(105)},
		{Name: "metric.5", Expires: model.NeverExpires()},
		{Name: "metric.6", Expires: model.ExpiresAtVersion(106), LatestFxReleaseVersion: model.Version(100)},
		{Name: "metric.7", Expires: model.ExpiresAtVersion(110), LatestFxReleaseVersion: model.Version(100)},
		{Name: "metric.8"},
		{Name: "metric.9", Expires: model.ParseExpiry("whenever")},
	}
}

func TestParseHorizon(t *testing.T) {
	h, err := ParseHorizon("never")
	require.NoError(t, err)
	assert.True(t, h.Never)
	assert.Equal(t, "never", h.String())

	h, err = ParseHorizon(" 6 ")
	require.NoError(t, err)
	assert.Equal(t, Months(6), h)
	assert.Equal(t, "6", h.String())

	for _, bad := range []string{"", "six", "-1", "1.5", "Never"} {
		_, err := ParseHorizon(bad)
		assert.ErrorIs(t, err, ErrInvalidHorizon, bad)
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		horizon Horizon
		want    []string
	}{
		{name: "six months", horizon: Months(6), want: []string{"metric.expired", "metric.2", "metric.1", "metric.6"}},
		{name: "twelve months", horizon: Months(12), want: []string{"metric.expired", "metric.2", "metric.3", "metric.1", "metric.6", "metric.7"}},
		{name: "zero", horizon: Months(0), want: []string{"metric.expired", "metric.1"}},
		{name: "never", horizon: Never(), want: []string{"metric.5", "metric.8"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(fixture(), tt.horizon, now).Names())
		})
	}
}

func TestFilter_Empty(t *testing.T) {
	got := Filter(nil, Months(6), now)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterString(t *testing.T) {
	got, err := FilterString(fixture(), "never", now)
	require.NoError(t, err)
	assert.Equal(t, []string{"metric.5", "metric.8"}, got.Names())

	_, err = FilterString(fixture(), "soon", now)
	assert.ErrorIs(t, err, ErrInvalidHorizon)
}
