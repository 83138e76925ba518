package label

import (
	"fmt"
	"strings"

	"github.com/mozilla/glean-dictionary/model"
)

// Key is a recognized label prefix.
type Key string

// Default label keys.
const (
	KeyTags    Key = "tags"
	KeyOrigin  Key = "origin"
	KeyType    Key = "type"
	KeyExpires Key = "expires"
	KeyName    Key = "name"
)

// Strategy selects how a label value is matched against an item.
type Strategy uint8

const (
	// StrategyList requires the item's list to contain every supplied value.
	StrategyList Strategy = iota
	// StrategyEqual treats a scalar field as a single-element list, which
	// amounts to equality with every supplied value.
	StrategyEqual
	// StrategySubstring requires the field to contain every supplied value.
	StrategySubstring
	// StrategyRouted excludes the key from generic filtering. The caller
	// consumes the value itself.
	StrategyRouted
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyList:
		return "list"
	case StrategyEqual:
		return "equal"
	case StrategySubstring:
		return "substring"
	case StrategyRouted:
		return "routed"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// Rule binds a key to a strategy and an accessor for the item field.
type Rule struct {
	Key      Key
	Strategy Strategy
	// Values extracts the field from an item. Unused for routed keys.
	Values func(*model.Item) []string
}

// Match reports whether the item satisfies every value for this rule.
// Routed rules match everything.
func (r Rule) Match(it *model.Item, values []string) bool {
	if it == nil {
		return false
	}
	if r.Strategy == StrategyRouted || len(values) == 0 {
		return true
	}
	if r.Values == nil {
		return false
	}
	fields := r.Values(it)
	if len(fields) == 0 {
		return false
	}
	for _, v := range values {
		if !r.matchOne(fields, v) {
			return false
		}
	}
	return true
}

func (r Rule) matchOne(fields []string, v string) bool {
	for _, f := range fields {
		switch r.Strategy {
		case StrategySubstring:
			if strings.Contains(f, v) {
				return true
			}
		default:
			if f == v {
				return true
			}
		}
	}
	return false
}

// Config is an ordered set of label rules. The zero value recognizes no keys.
// A Config is immutable once built and safe for concurrent use.
type Config struct {
	rules []Rule
	index map[Key]int
}

// NewConfig builds a Config from rules. A later rule for the same key
// replaces an earlier one in place.
func NewConfig(rules ...Rule) *Config {
	c := &Config{index: make(map[Key]int, len(rules))}
	for _, r := range rules {
		if i, ok := c.index[r.Key]; ok {
			c.rules[i] = r
			continue
		}
		c.index[r.Key] = len(c.rules)
		c.rules = append(c.rules, r)
	}
	return c
}

// DefaultConfig recognizes tags, origin, type, expires and name.
func DefaultConfig() *Config {
	return NewConfig(
		Rule{Key: KeyTags, Strategy: StrategyList, Values: func(it *model.Item) []string { return it.Tags }},
		Rule{Key: KeyOrigin, Strategy: StrategyEqual, Values: scalar(func(it *model.Item) string { return it.Origin })},
		Rule{Key: KeyType, Strategy: StrategyEqual, Values: scalar(func(it *model.Item) string { return it.Type })},
		Rule{Key: KeyExpires, Strategy: StrategyRouted},
		Rule{Key: KeyName, Strategy: StrategySubstring, Values: scalar(func(it *model.Item) string { return it.Name })},
	)
}

func scalar(get func(*model.Item) string) func(*model.Item) []string {
	return func(it *model.Item) []string {
		v := get(it)
		if v == "" {
			return nil
		}
		return []string{v}
	}
}

// With returns a copy of c with rules added or replaced.
func (c *Config) With(rules ...Rule) *Config {
	return NewConfig(append(c.Rules(), rules...)...)
}

// Without returns a copy of c that no longer recognizes keys.
func (c *Config) Without(keys ...Key) *Config {
	drop := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	kept := make([]Rule, 0, len(c.Rules()))
	for _, r := range c.Rules() {
		if _, ok := drop[r.Key]; !ok {
			kept = append(kept, r)
		}
	}
	return NewConfig(kept...)
}

// Lookup returns the rule for key.
func (c *Config) Lookup(key string) (Rule, bool) {
	if c == nil {
		return Rule{}, false
	}
	i, ok := c.index[Key(key)]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i], true
}

// Keys returns the recognized keys in rule order.
func (c *Config) Keys() []Key {
	rules := c.Rules()
	keys := make([]Key, len(rules))
	for i, r := range rules {
		keys[i] = r.Key
	}
	return keys
}

// Rules returns a copy of the rules in order.
func (c *Config) Rules() []Rule {
	if c == nil {
		return nil
	}
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
