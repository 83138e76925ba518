package lexical

// SearchOptions tunes a search.
type SearchOptions struct {
	// Limit caps the number of returned keys. Zero or negative means all
	// matches.
	Limit int
}

// Hit is a matched item key with its relevance score.
type Hit struct {
	Key   string
	Score float64
}

// Index is the interface for a full-text index over an item collection.
type Index interface {
	// Search returns the deduplicated keys of matching items in relevance
	// order.
	Search(query string, opts SearchOptions) ([]string, error)
	// Len returns the number of indexed items.
	Len() int
}

// ScoredIndex is an Index that can also report scores.
type ScoredIndex interface {
	Index
	SearchHits(query string, opts SearchOptions) ([]Hit, error)
}

// Keys returns the keys of hits, in order. It returns nil for no hits.
func Keys(hits []Hit) []string {
	if len(hits) == 0 {
		return nil
	}
	keys := make([]string, len(hits))
	for i, h := range hits {
		keys[i] = h.Key
	}
	return keys
}
