package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/mozilla/glean-dictionary/lifecycle"
	"github.com/mozilla/glean-dictionary/model"
)

// Mode selects the liveness rule.
type Mode uint8

const (
	// ModeDefault treats non-expired items as live.
	ModeDefault Mode = iota
	// ModeLegacy treats items whose active flag is not false as live.
	ModeLegacy
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "default" or "legacy".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "default":
		return ModeDefault, nil
	case "legacy":
		return ModeLegacy, nil
	default:
		return 0, fmt.Errorf("unknown ranking mode %q", s)
	}
}

// Scores.
const (
	LiveScore    = 1
	AllowedScore = 10
)

// DefaultAllowedTypes returns the metric types that the aggregation
// dashboard supports.
func DefaultAllowedTypes() map[string]struct{} {
	return set(
		"timing_distribution",
		"memory_distribution",
		"custom_distribution",
		"boolean",
		"counter",
		"labeled_counter",
		"quantity",
		"timespan",
	)
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

// Presenter scores and orders hits. It never drops or adds items.
type Presenter struct {
	Mode Mode
	// Restrictive enables the allowed-type bonus. Ignored in legacy mode.
	Restrictive bool
	Allowed     map[string]struct{}
	Now         func() time.Time
}

// NewPresenter returns a Presenter using DefaultAllowedTypes and time.Now.
func NewPresenter(mode Mode, restrictive bool) Presenter {
	return Presenter{
		Mode:        mode,
		Restrictive: restrictive,
		Allowed:     DefaultAllowedTypes(),
		Now:         time.Now,
	}
}

// Score returns the composite score of it.
func (p Presenter) Score(it *model.Item) int {
	if it == nil {
		return 0
	}
	if p.Mode == ModeLegacy {
		if lifecycle.IsActive(it) {
			return LiveScore
		}
		return 0
	}

	score := 0
	if !lifecycle.IsExpired(it, p.now()) {
		score += LiveScore
	}
	if p.Restrictive {
		if _, ok := p.Allowed[it.Type]; ok {
			score += AllowedScore
		}
	}
	return score
}

// Rank returns hits sorted by descending score. Ties keep their input order.
func (p Presenter) Rank(hits model.Collection) model.Collection {
	now := p.now()
	p.Now = func() time.Time { return now }

	type scored struct {
		it    *model.Item
		score int
	}
	ranked := make([]scored, len(hits))
	for i, it := range hits {
		ranked[i] = scored{it: it, score: p.Score(it)}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make(model.Collection, len(ranked))
	for i, r := range ranked {
		out[i] = r.it
	}
	return out
}

func (p Presenter) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
