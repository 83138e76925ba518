package ranking

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mozilla/glean-dictionary/model"
)

// DefaultLimit is the number of hits Find returns when no limit is given.
const DefaultLimit = 10

// Summary is the text Find matches against.
func Summary(it *model.Item) string {
	if it == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{it.Name, it.Type, it.Description} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// summarySource implements fuzzy.Source over item summaries.
type summarySource struct {
	items model.Collection
}

func (s summarySource) String(i int) string { return Summary(s.items[i]) }

func (s summarySource) Len() int { return len(s.items) }

// Find returns up to limit items whose summary fuzzy-matches query, best
// match first. A limit of zero or less means DefaultLimit. An empty query
// matches nothing.
func Find(query string, items model.Collection, limit int) model.Collection {
	query = strings.TrimSpace(query)
	if query == "" || len(items) == 0 {
		return model.Collection{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	matches := fuzzy.FindFrom(query, summarySource{items: items})
	out := make(model.Collection, 0, min(limit, len(matches)))
	for _, m := range matches {
		if items[m.Index] == nil {
			continue
		}
		out = append(out, items[m.Index])
		if len(out) == limit {
			break
		}
	}
	return out
}
