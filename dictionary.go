package dictionary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mozilla/glean-dictionary/catalog"
	"github.com/mozilla/glean-dictionary/expiration"
	"github.com/mozilla/glean-dictionary/internal/cache"
	"github.com/mozilla/glean-dictionary/lexical"
	"github.com/mozilla/glean-dictionary/lifecycle"
	"github.com/mozilla/glean-dictionary/model"
	"github.com/mozilla/glean-dictionary/query"
	"github.com/mozilla/glean-dictionary/ranking"
	"github.com/mozilla/glean-dictionary/resource"
)

// Dictionary searches, filters and ranks dictionary items, either passed in
// by the caller or loaded per application from a snapshot store.
//
// A Dictionary is safe for concurrent use.
type Dictionary struct {
	engine     *query.Engine
	classifier lifecycle.Classifier
	now        func() time.Time
	mode       ranking.Mode

	store *catalog.Store
	cache *cache.LRU[string, *catalog.Catalog]
	loads singleflight.Group

	// generations counts imports per app. A load only caches its result if
	// no import happened since it started.
	mu          sync.Mutex
	generations map[string]uint64

	rc      *resource.Controller
	metrics MetricsCollector
	logger  *Logger
}

// New creates a Dictionary.
func New(optFns ...Option) (*Dictionary, error) {
	o := applyOptions(optFns)
	if o.cacheCapacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", o.cacheCapacity)
	}

	engine := query.New(
		query.WithLabelConfig(o.labels),
		query.WithFields(o.fields...),
		query.WithClock(o.now),
	)

	d := &Dictionary{
		engine:     engine,
		classifier: lifecycle.NewClassifier(o.now),
		now:        o.now,
		mode:       o.rankingMode,
		store: catalog.NewStore(o.store,
			catalog.WithCompression(o.compression),
			catalog.WithResourceController(o.resource),
			catalog.WithClock(o.now),
		),
		cache:       cache.NewLRU[string, *catalog.Catalog](o.cacheCapacity, o.resource),
		generations: make(map[string]uint64),
		rc:          o.resource,
		metrics:     o.metricsCollector,
		logger:      o.logger,
	}
	d.cache.OnEvict(func(app string, _ *catalog.Catalog) {
		d.metrics.RecordCacheEvict(app)
	})
	return d, nil
}

// Engine returns the query engine.
func (d *Dictionary) Engine() *query.Engine { return d.engine }

// Search filters items by the query's labels and ranks them by the query's
// free text. See query.Engine.Search.
func (d *Dictionary) Search(ctx context.Context, raw string, items model.Collection) (model.Collection, error) {
	return d.SearchWithIndex(ctx, raw, items, nil)
}

// SearchWithIndex is Search against an index previously built with
// BuildIndex for the same items.
func (d *Dictionary) SearchWithIndex(ctx context.Context, raw string, items model.Collection, idx lexical.Index) (model.Collection, error) {
	start := time.Now()
	res, err := d.search(ctx, raw, items, idx)
	d.metrics.RecordSearch(len(res), time.Since(start), err)
	d.logger.LogSearch(ctx, raw, len(res), err)
	return res, err
}

func (d *Dictionary) search(ctx context.Context, raw string, items model.Collection, idx lexical.Index) (model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, ErrNilCollection
	}
	res, err := d.engine.Search(raw, items, idx)
	return res, translateError(err)
}

// BuildIndex builds a free-text index over items.
func (d *Dictionary) BuildIndex(items model.Collection) lexical.Index {
	return d.engine.BuildIndex(items)
}

// FilterByLifecycle drops expired and removed items unless
// showRemovedOrExpired is set.
func (d *Dictionary) FilterByLifecycle(items model.Collection, showRemovedOrExpired bool) model.Collection {
	return d.classifier.FilterUncollected(items, showRemovedOrExpired)
}

// FilterByExpirationWindow returns the items expiring within horizon
// ("never" or a number of months).
func (d *Dictionary) FilterByExpirationWindow(items model.Collection, horizon string) (model.Collection, error) {
	if items == nil {
		return nil, ErrNilCollection
	}
	res, err := expiration.FilterString(items, horizon, d.now())
	return res, translateError(err)
}

func (d *Dictionary) presenter(restrictive bool) ranking.Presenter {
	p := ranking.NewPresenter(d.mode, restrictive)
	p.Now = d.now
	return p
}

// Rank reorders hits by liveness and, when restrictive, by allowed type.
func (d *Dictionary) Rank(hits model.Collection, restrictive bool) model.Collection {
	return d.presenter(restrictive).Rank(hits)
}

// LegacySearch fuzzy-matches query against item summaries and ranks the
// first limit hits. A limit <= 0 means ranking.DefaultLimit.
func (d *Dictionary) LegacySearch(query string, items model.Collection, limit int, restrictive bool) model.Collection {
	return d.Rank(ranking.Find(query, items, limit), restrictive)
}

// Catalog returns app's current catalog, loading it from the store on a
// cache miss. Concurrent misses for the same app share one load. A caller
// whose ctx ends stops waiting; the shared load carries on for the others.
func (d *Dictionary) Catalog(ctx context.Context, app string) (*catalog.Catalog, error) {
	if cat, ok := d.cache.Get(app); ok {
		d.metrics.RecordCacheHit(app)
		return cat, nil
	}
	d.metrics.RecordCacheMiss(app)

	loadCtx := context.WithoutCancel(ctx)
	ch := d.loads.DoChan(app, func() (any, error) {
		return d.load(loadCtx, app)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*catalog.Catalog), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (d *Dictionary) generation(app string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generations[app]
}

// cacheIfCurrent caches cat unless app was imported after gen was read.
func (d *Dictionary) cacheIfCurrent(ctx context.Context, app string, gen uint64, cat *catalog.Catalog) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.generations[app] != gen {
		d.logger.DebugContext(ctx, "discarding superseded catalog", "app", app, "version", cat.Version)
		return
	}
	if !d.cache.Set(app, cat, int64(cat.Len())+1) {
		d.logger.WarnContext(ctx, "catalog too large to cache", "app", app, "items", cat.Len())
	}
}

func (d *Dictionary) load(ctx context.Context, app string) (*catalog.Catalog, error) {
	gen := d.generation(app)
	start := time.Now()
	snap, err := d.store.Load(ctx, app)
	err = translateError(err)
	if err != nil {
		d.metrics.RecordLoad(app, 0, time.Since(start), err)
		d.logger.LogLoad(ctx, app, 0, 0, err)
		return nil, err
	}

	cat := catalog.FromSnapshot(snap, d.engine)
	d.metrics.RecordLoad(app, cat.Len(), time.Since(start), nil)
	d.logger.LogLoad(ctx, app, cat.Version, cat.Len(), nil)
	d.cacheIfCurrent(ctx, app, gen, cat)
	return cat, nil
}

// SearchApp runs a query against app's current catalog.
func (d *Dictionary) SearchApp(ctx context.Context, app, raw string) (model.Collection, error) {
	cat, err := d.Catalog(ctx, app)
	if err != nil {
		return nil, err
	}
	return d.SearchWithIndex(ctx, raw, cat.Items(), cat.Index())
}

// Import stores items as app's next catalog version and drops the cached
// catalog.
func (d *Dictionary) Import(ctx context.Context, app string, items model.Collection) (*catalog.Snapshot, error) {
	if items == nil {
		return nil, ErrNilCollection
	}
	start := time.Now()
	snap, err := d.store.Save(ctx, app, items)
	err = translateError(err)
	d.metrics.RecordImport(app, len(items), time.Since(start), err)
	if err != nil {
		d.logger.LogImport(ctx, app, 0, len(items), err)
		return nil, err
	}
	d.logger.LogImport(ctx, app, snap.Version, len(snap.Items), nil)

	d.mu.Lock()
	d.generations[app]++
	d.cache.Remove(app)
	d.mu.Unlock()
	// Later misses start a fresh load instead of joining one that may
	// return the previous version.
	d.loads.Forget(app)
	return snap, nil
}

// Apps lists the applications with stored catalogs.
func (d *Dictionary) Apps(ctx context.Context) ([]string, error) {
	apps, err := d.store.Apps(ctx)
	return apps, translateError(err)
}

// Preload loads the catalogs of apps concurrently and caches them.
func (d *Dictionary) Preload(ctx context.Context, apps ...string) error {
	gens := make(map[string]uint64, len(apps))
	for _, app := range apps {
		gens[app] = d.generation(app)
	}
	start := time.Now()
	snaps, err := d.store.LoadAll(ctx, apps)
	if err != nil {
		return translateError(err)
	}
	for app, snap := range snaps {
		cat := catalog.FromSnapshot(snap, d.engine)
		d.metrics.RecordLoad(app, cat.Len(), time.Since(start), nil)
		d.cacheIfCurrent(ctx, app, gens[app], cat)
	}
	d.logger.InfoContext(ctx, "catalogs preloaded", "apps", len(snaps))
	return nil
}

// CacheStats describes the catalog cache.
type CacheStats struct {
	Entries int
	// Cost is the sum of item counts plus one per catalog.
	Cost   int64
	Hits   int64
	Misses int64
	// ItemsReserved and ItemBudget come from the resource controller; both
	// are zero without one, and a zero budget is unlimited.
	ItemsReserved int64
	ItemBudget    int64
}

// CacheStats returns the current cache occupancy and lookup counts.
func (d *Dictionary) CacheStats() CacheStats {
	hits, misses := d.cache.Stats()
	return CacheStats{
		Entries: d.cache.Len(),
		Cost:    d.cache.Size(),
		Hits:    hits,
		Misses:  misses,

		ItemsReserved: d.rc.ItemUsage(),
		ItemBudget:    d.rc.ItemBudget(),
	}
}

// Evict drops the cached catalogs of apps, or every cached catalog when no
// app is given. The next lookup reloads from the store.
func (d *Dictionary) Evict(apps ...string) {
	if len(apps) == 0 {
		d.cache.Purge()
		return
	}
	drop := make(map[string]struct{}, len(apps))
	for _, app := range apps {
		drop[app] = struct{}{}
	}
	d.cache.Invalidate(func(app string) bool {
		_, ok := drop[app]
		return ok
	})
}

// Cached returns the apps whose catalogs are cached, most recently used
// first.
func (d *Dictionary) Cached() []string {
	return d.cache.Keys()
}
