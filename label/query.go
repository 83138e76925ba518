package label

import (
	"strings"
	"unicode"
)

// Label is one parsed key:value token.
type Label struct {
	Key   Key
	Value string
}

// String renders the label back into query syntax.
func (l Label) String() string {
	if strings.ContainsFunc(l.Value, unicode.IsSpace) {
		return string(l.Key) + `:"` + l.Value + `"`
	}
	return string(l.Key) + ":" + l.Value
}

// Query is a raw query split into labels and free-text terms.
type Query struct {
	Raw string
	// Labels in the order they appeared.
	Labels []Label
	// Terms are the free-text tokens in order, quotes preserved.
	Terms []string
}

// Values returns the values supplied for key, in query order.
func (q Query) Values(key Key) []string {
	var out []string
	for _, l := range q.Labels {
		if l.Key == key {
			out = append(out, l.Value)
		}
	}
	return out
}

// Has reports whether at least one value was supplied for key.
func (q Query) Has(key Key) bool {
	for _, l := range q.Labels {
		if l.Key == key {
			return true
		}
	}
	return false
}

// Text joins the free-text terms with single spaces.
func (q Query) Text() string {
	return strings.Join(q.Terms, " ")
}

// HasText reports whether the query carries free text.
func (q Query) HasText() bool {
	return len(q.Terms) > 0
}

// Empty reports whether the query has neither labels nor free text.
func (q Query) Empty() bool {
	return len(q.Labels) == 0 && len(q.Terms) == 0
}

// Tokenize splits raw on whitespace. Double-quoted runs are kept intact,
// including when they follow a key prefix (key:"a b"). An unterminated
// quote extends to the end of the input.
func Tokenize(raw string) []string {
	var (
		tokens  []string
		cur     strings.Builder
		quoted  bool
		started bool
	)
	flush := func() {
		if started {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
		started = false
	}
	for _, r := range raw {
		switch {
		case r == '"':
			quoted = !quoted
			cur.WriteRune(r)
			started = true
		case unicode.IsSpace(r) && !quoted:
			flush()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	flush()
	return tokens
}

// Unquote strips one pair of surrounding double quotes. A lone leading quote
// (an unterminated phrase) is stripped as well.
func Unquote(s string) string {
	if !strings.HasPrefix(s, `"`) {
		return s
	}
	s = s[1:]
	return strings.TrimSuffix(s, `"`)
}

// Parse splits raw into labels and free-text terms.
//
// Only the first colon separates key from value, so tags:A:Tag carries the
// value "A:Tag". A label with an empty value (tags: or tags:"") is dropped
// and does not narrow the result, so a query made only of such labels
// matches the whole collection. Tokens with an unknown key are free text.
func (c *Config) Parse(raw string) Query {
	q := Query{Raw: raw}
	for _, tok := range Tokenize(raw) {
		key, value, ok := strings.Cut(tok, ":")
		if !ok {
			q.Terms = append(q.Terms, tok)
			continue
		}
		if _, known := c.Lookup(key); !known {
			q.Terms = append(q.Terms, tok)
			continue
		}
		value = Unquote(value)
		if value == "" {
			continue
		}
		q.Labels = append(q.Labels, Label{Key: Key(key), Value: value})
	}
	return q
}

// Parse splits raw using DefaultConfig.
func Parse(raw string) Query {
	return DefaultConfig().Parse(raw)
}
