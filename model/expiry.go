package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ExpiryKind identifies how an item's expiration is encoded.
type ExpiryKind uint8

const (
	// ExpiryNever means the item never expires. Both an absent expires
	// attribute and the literal "never" decode to this kind.
	ExpiryNever ExpiryKind = iota
	// ExpiryDate means the item expires after a calendar date.
	ExpiryDate
	// ExpiryVersion means the item expires once the product version
	// exceeds a threshold.
	ExpiryVersion
	// ExpiryInvalid means the raw value could not be interpreted.
	ExpiryInvalid
)

// String returns the kind name.
func (k ExpiryKind) String() string {
	switch k {
	case ExpiryNever:
		return "never"
	case ExpiryDate:
		return "date"
	case ExpiryVersion:
		return "version"
	case ExpiryInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("ExpiryKind(%d)", uint8(k))
	}
}

// NeverLiteral is the raw expires value for items that never expire.
const NeverLiteral = "never"

// dateLayouts are tried in order when parsing a date-encoded expiry.
// "2006-1-2" accepts the unpadded month/day form some exporters produce.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
}

// Expiry is the parsed form of an item's expires attribute.
type Expiry struct {
	Kind ExpiryKind
	// Date is set for ExpiryDate, at UTC midnight for plain dates.
	Date time.Time
	// Version is set for ExpiryVersion.
	Version float64
	// Raw is the original textual value; empty when the attribute was absent.
	Raw string
}

// ParseExpiry interprets a raw expires value.
//
// Numeric strings are versions, anything that parses as a date is a date,
// "never" and the empty string never expire. Everything else is invalid.
func ParseExpiry(raw string) Expiry {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Expiry{Kind: ExpiryNever}
	}
	if s == NeverLiteral {
		return Expiry{Kind: ExpiryNever, Raw: NeverLiteral}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return Expiry{Kind: ExpiryVersion, Version: v, Raw: s}
	}
	if d, ok := parseDate(s); ok {
		return Expiry{Kind: ExpiryDate, Date: d, Raw: s}
	}
	return Expiry{Kind: ExpiryInvalid, Raw: s}
}

// ExpiresOn returns a date-encoded expiry.
func ExpiresOn(d time.Time) Expiry {
	d = d.UTC()
	return Expiry{
		Kind: ExpiryDate,
		Date: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		Raw:  d.Format("2006-01-02"),
	}
}

// ExpiresAtVersion returns a version-encoded expiry.
func ExpiresAtVersion(v float64) Expiry {
	return Expiry{Kind: ExpiryVersion, Version: v, Raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// NeverExpires returns the literal "never" expiry.
func NeverExpires() Expiry {
	return Expiry{Kind: ExpiryNever, Raw: NeverLiteral}
}

// IsZero reports whether the expires attribute was absent.
func (e Expiry) IsZero() bool {
	return e.Kind == ExpiryNever && e.Raw == ""
}

// IsNever reports whether the item never expires (absent or "never").
func (e Expiry) IsNever() bool {
	return e.Kind == ExpiryNever
}

// String returns the raw value.
func (e Expiry) String() string {
	return e.Raw
}

// MarshalJSON encodes versions as numbers and everything else as strings.
func (e Expiry) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case ExpiryVersion:
		return []byte(strconv.FormatFloat(e.Version, 'f', -1, 64)), nil
	case ExpiryNever:
		if e.Raw == "" {
			return []byte("null"), nil
		}
	}
	return json.Marshal(e.Raw)
}

// UnmarshalJSON accepts a JSON string, number or null.
func (e *Expiry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = Expiry{Kind: ExpiryNever}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = ParseExpiry(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Booleans and objects are kept as invalid instead of failing the
		// whole collection.
		*e = Expiry{Kind: ExpiryInvalid, Raw: string(data)}
		return nil
	}
	*e = ParseExpiry(n.String())
	return nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTimestamp parses a date_first_seen style value. It accepts RFC 3339
// timestamps, "YYYY-MM-DD HH:MM:SS" and plain dates.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02", "2006-1-2"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
