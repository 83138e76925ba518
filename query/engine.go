package query

import (
	"time"

	"github.com/mozilla/glean-dictionary/expiration"
	"github.com/mozilla/glean-dictionary/label"
	"github.com/mozilla/glean-dictionary/lexical"
	"github.com/mozilla/glean-dictionary/lexical/forward"
	"github.com/mozilla/glean-dictionary/model"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLabelConfig sets the recognized label keys. Nil restores the default.
func WithLabelConfig(c *label.Config) Option {
	return func(e *Engine) {
		if c == nil {
			c = label.DefaultConfig()
		}
		e.labels = c
	}
}

// WithFields sets the fields indexed by BuildIndex.
func WithFields(fields ...lexical.Field) Option {
	return func(e *Engine) {
		e.fields = fields
	}
}

// WithClock sets the clock used for the expiration window.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now == nil {
			now = time.Now
		}
		e.now = now
	}
}

// Engine runs queries against item collections. It holds configuration only
// and is safe for concurrent use.
type Engine struct {
	labels *label.Config
	fields []lexical.Field
	now    func() time.Time
}

// New returns an Engine with the default label keys and fields.
func New(opts ...Option) *Engine {
	e := &Engine{
		labels: label.DefaultConfig(),
		fields: lexical.DefaultFields(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	if len(e.fields) == 0 {
		e.fields = lexical.DefaultFields()
	}
	return e
}

// Labels returns the label configuration.
func (e *Engine) Labels() *label.Config { return e.labels }

// Parse splits raw into labels and free text.
func (e *Engine) Parse(raw string) label.Query {
	return e.labels.Parse(raw)
}

// BuildIndex indexes items for reuse across Search calls on the same
// collection.
func (e *Engine) BuildIndex(items model.Collection) lexical.Index {
	return forward.Build(items, e.fields...)
}

// Search runs raw against items. idx must have been built from items; when
// nil it is built on demand and only when the query carries free text.
//
// Keys returned by idx that are not in items are skipped. An expires: label
// with a horizon that is neither "never" nor a month count matches nothing.
// The input collection and its items are never modified.
func (e *Engine) Search(raw string, items model.Collection, idx lexical.Index) (model.Collection, error) {
	q := e.Parse(raw)
	sel := e.labels.Select(items, q.Labels)

	var window map[*model.Item]struct{}
	if horizon, ok := e.routedHorizon(q); ok {
		h, err := expiration.ParseHorizon(horizon)
		if err != nil {
			return model.Collection{}, nil
		}
		windowed := expiration.Filter(sel.Collect(items), h, e.now())
		if !q.HasText() {
			return windowed, nil
		}
		window = make(map[*model.Item]struct{}, len(windowed))
		for _, it := range windowed {
			window[it] = struct{}{}
		}
	}

	if !q.HasText() {
		return sel.Collect(items), nil
	}

	if idx == nil {
		idx = e.BuildIndex(items)
	}
	keys, err := idx.Search(q.Text(), lexical.SearchOptions{})
	if err != nil {
		return nil, err
	}

	ordinals := make(map[string]int, len(items))
	for i, it := range items {
		if it == nil {
			continue
		}
		if _, dup := ordinals[it.Name]; !dup {
			ordinals[it.Name] = i
		}
	}

	out := make(model.Collection, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		i, ok := ordinals[key]
		if !ok || !sel.Contains(i) {
			continue
		}
		if window != nil {
			if _, ok := window[items[i]]; !ok {
				continue
			}
		}
		out = append(out, items[i])
	}
	return out, nil
}

// routedHorizon returns the first expires: value when the key is routed.
func (e *Engine) routedHorizon(q label.Query) (string, bool) {
	r, ok := e.labels.Lookup(string(label.KeyExpires))
	if !ok || r.Strategy != label.StrategyRouted {
		return "", false
	}
	values := q.Values(label.KeyExpires)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}
