package expiration

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mozilla/glean-dictionary/model"
)

// ErrInvalidHorizon is returned for a horizon that is neither "never" nor a
// non-negative whole number of months.
var ErrInvalidHorizon = errors.New("invalid expiration horizon")

// Horizon is the expiration window.
type Horizon struct {
	Never  bool
	Months int
}

// Never returns the horizon matching items that never expire.
func Never() Horizon { return Horizon{Never: true} }

// Months returns an N month horizon.
func Months(n int) Horizon { return Horizon{Months: n} }

// String renders the horizon in query syntax.
func (h Horizon) String() string {
	if h.Never {
		return model.NeverLiteral
	}
	return strconv.Itoa(h.Months)
}

// ParseHorizon parses "never" or a month count.
func ParseHorizon(s string) (Horizon, error) {
	s = strings.TrimSpace(s)
	if s == model.NeverLiteral {
		return Never(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Horizon{}, fmt.Errorf("%w: %q", ErrInvalidHorizon, s)
	}
	return Months(n), nil
}

// Filter returns the items expiring within h.
//
// For a "never" horizon these are the items whose expiry is absent or
// "never". For N months, date-encoded items expiring on or before now plus N
// months come first, then version-encoded items whose expiry is at most the
// latest release plus N. Both groups keep collection order. Items already
// past their expiry are included. Items without a usable expiry, and
// version-encoded items without a known latest release, are left out.
func Filter(items model.Collection, h Horizon, now time.Time) model.Collection {
	out := make(model.Collection, 0)
	if h.Never {
		for _, it := range items {
			if it != nil && it.Expires.IsNever() {
				out = append(out, it)
			}
		}
		return out
	}

	target := now.AddDate(0, h.Months, 0)
	var versioned model.Collection
	for _, it := range items {
		if it == nil {
			continue
		}
		switch it.Expires.Kind {
		case model.ExpiryDate:
			if !it.Expires.Date.After(target) {
				out = append(out, it)
			}
		case model.ExpiryVersion:
			latest, ok := it.LatestVersion()
			if ok && it.Expires.Version <= latest+float64(h.Months) {
				versioned = append(versioned, it)
			}
		}
	}
	return append(out, versioned...)
}

// FilterString parses horizon and applies Filter.
func FilterString(items model.Collection, horizon string, now time.Time) (model.Collection, error) {
	h, err := ParseHorizon(horizon)
	if err != nil {
		return nil, err
	}
	return Filter(items, h, now), nil
}
