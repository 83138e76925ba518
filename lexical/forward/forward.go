package forward

import (
	"cmp"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mozilla/glean-dictionary/internal/bitmap"
	"github.com/mozilla/glean-dictionary/lexical"
	"github.com/mozilla/glean-dictionary/model"
)

type fieldIndex struct {
	field lexical.Field
	// terms is sorted; postings[i] holds the ordinals containing terms[i].
	terms    []string
	postings []*bitmap.Bitmap
	// values maps normalized whole values to ordinals (keyword fields).
	values map[string]*bitmap.Bitmap
	// texts holds normalized values per ordinal (text fields).
	texts map[uint32][]string
}

// Index is an immutable inverted index.
type Index struct {
	keys   []string
	size   int
	fields []*fieldIndex
}

// Ensure Index implements lexical.ScoredIndex
var _ lexical.ScoredIndex = (*Index)(nil)

// Build indexes items over fields, or lexical.DefaultFields when none are
// given. Nil items occupy an ordinal but are never matched.
func Build(items model.Collection, fields ...lexical.Field) *Index {
	if len(fields) == 0 {
		fields = lexical.DefaultFields()
	}

	idx := &Index{keys: make([]string, len(items))}
	for _, f := range fields {
		idx.fields = append(idx.fields, buildField(items, f))
	}
	for i, it := range items {
		if it == nil {
			continue
		}
		idx.keys[i] = it.Name
		idx.size++
	}
	return idx
}

func buildField(items model.Collection, f lexical.Field) *fieldIndex {
	fi := &fieldIndex{field: f}
	if f.Kind == lexical.KindText {
		fi.texts = make(map[uint32][]string)
	} else {
		fi.values = make(map[string]*bitmap.Bitmap)
	}

	inverted := make(map[string]*bitmap.Bitmap)
	for i, it := range items {
		if it == nil || f.Values == nil {
			continue
		}
		id := uint32(i)
		for _, v := range f.Values(it) {
			for _, tok := range lexical.Tokenize(v) {
				b, ok := inverted[tok]
				if !ok {
					b = bitmap.New()
					inverted[tok] = b
				}
				b.Add(id)
			}

			norm := lexical.Normalize(v)
			if norm == "" {
				continue
			}
			if fi.texts != nil {
				fi.texts[id] = append(fi.texts[id], norm)
				continue
			}
			b, ok := fi.values[norm]
			if !ok {
				b = bitmap.New()
				fi.values[norm] = b
			}
			b.Add(id)
		}
	}

	fi.terms = make([]string, 0, len(inverted))
	for tok := range inverted {
		fi.terms = append(fi.terms, tok)
	}
	slices.Sort(fi.terms)
	fi.postings = make([]*bitmap.Bitmap, len(fi.terms))
	for i, tok := range fi.terms {
		b := inverted[tok]
		b.RunOptimize()
		fi.postings[i] = b
	}
	return fi
}

// match returns the ordinals matching c in this field and the subset that
// matched exactly.
func (fi *fieldIndex) match(c lexical.Clause) (matched, exact *bitmap.Bitmap) {
	if c.Phrase {
		return fi.matchPhrase(c.Text)
	}

	start := sort.SearchStrings(fi.terms, c.Text)
	end := start
	for end < len(fi.terms) && strings.HasPrefix(fi.terms[end], c.Text) {
		end++
	}
	if start == end {
		return nil, nil
	}
	matched = bitmap.Union(fi.postings[start:end]...)
	if fi.terms[start] == c.Text {
		exact = fi.postings[start]
	}
	return matched, exact
}

func (fi *fieldIndex) matchPhrase(phrase string) (matched, exact *bitmap.Bitmap) {
	if fi.texts == nil {
		b, ok := fi.values[phrase]
		if !ok {
			return nil, nil
		}
		return b, b
	}

	matched, exact = bitmap.New(), bitmap.New()
	for id, values := range fi.texts {
		for _, v := range values {
			if v == phrase {
				exact.Add(id)
			}
			if containsPhrase(v, phrase) {
				matched.Add(id)
			}
		}
	}
	if matched.IsEmpty() {
		return nil, nil
	}
	return matched, exact
}

// containsPhrase reports whether phrase occurs in v without splitting a
// token at either end, so "bc de" does not match "abc def".
func containsPhrase(v, phrase string) bool {
	first, _ := utf8.DecodeRuneInString(phrase)
	last, _ := utf8.DecodeLastRuneInString(phrase)
	for off := 0; off+len(phrase) <= len(v); {
		i := strings.Index(v[off:], phrase)
		if i < 0 {
			return false
		}
		start, end := off+i, off+i+len(phrase)
		before, _ := utf8.DecodeLastRuneInString(v[:start])
		after, _ := utf8.DecodeRuneInString(v[end:])
		if (start == 0 || !isWordRune(first) || !isWordRune(before)) &&
			(end == len(v) || !isWordRune(last) || !isWordRune(after)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(v[start:])
		off = start + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Len returns the number of indexed items.
func (idx *Index) Len() int {
	return idx.size
}

// Search returns the keys of matching items in relevance order.
func (idx *Index) Search(query string, opts lexical.SearchOptions) ([]string, error) {
	hits, err := idx.SearchHits(query, opts)
	if err != nil {
		return nil, err
	}
	return lexical.Keys(hits), nil
}

// SearchHits returns the matching items with their scores.
//
// Each clause contributes the weight of the best field it matched in,
// doubled when the match was exact. Equal scores keep collection order.
// A query without clauses matches nothing.
func (idx *Index) SearchHits(query string, opts lexical.SearchOptions) ([]lexical.Hit, error) {
	clauses := lexical.ParseClauses(query)
	if len(clauses) == 0 || idx.size == 0 {
		return nil, nil
	}

	var (
		candidates *bitmap.Bitmap
		scores     = make(map[uint32]float64)
	)
	for _, c := range clauses {
		matched := bitmap.New()
		best := make(map[uint32]float64)
		for _, fi := range idx.fields {
			m, exact := fi.match(c)
			if m == nil {
				continue
			}
			m.ForEach(func(id uint32) bool {
				if candidates != nil && !candidates.Contains(id) {
					return true
				}
				w := fi.field.Weight
				if exact != nil && exact.Contains(id) {
					w *= 2
				}
				if w > best[id] {
					best[id] = w
				}
				return true
			})
			matched.Or(m)
		}

		if candidates == nil {
			candidates = matched
		} else {
			candidates.And(matched)
		}
		if candidates.IsEmpty() {
			return nil, nil
		}
		for id, w := range best {
			scores[id] += w
		}
	}

	type scored struct {
		id    uint32
		score float64
	}
	ranked := make([]scored, 0, candidates.Cardinality())
	candidates.ForEach(func(id uint32) bool {
		ranked = append(ranked, scored{id: id, score: scores[id]})
		return true
	})
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	seen := make(map[string]struct{}, len(ranked))
	hits := make([]lexical.Hit, 0, len(ranked))
	for _, r := range ranked {
		key := idx.keys[r.id]
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		hits = append(hits, lexical.Hit{Key: key, Score: r.score})
		if opts.Limit > 0 && len(hits) == opts.Limit {
			break
		}
	}
	return hits, nil
}
