package dictionary

import (
	"log/slog"
	"time"

	"github.com/mozilla/glean-dictionary/blobstore"
	"github.com/mozilla/glean-dictionary/codec"
	"github.com/mozilla/glean-dictionary/label"
	"github.com/mozilla/glean-dictionary/lexical"
	"github.com/mozilla/glean-dictionary/ranking"
	"github.com/mozilla/glean-dictionary/resource"
)

// DefaultCacheCapacity is the default number of items held by cached
// catalogs.
const DefaultCacheCapacity = 1_000_000

type options struct {
	labels           *label.Config
	fields           []lexical.Field
	now              func() time.Time
	metricsCollector MetricsCollector
	logger           *Logger
	store            blobstore.BlobStore
	compression      codec.Compression
	cacheCapacity    int64
	rankingMode      ranking.Mode
	resource         *resource.Controller
}

// Option configures a Dictionary.
type Option func(*options)

// WithLabelConfig sets the recognized label keys and their strategies.
// Nil restores label.DefaultConfig().
func WithLabelConfig(c *label.Config) Option {
	return func(o *options) {
		o.labels = c
	}
}

// WithFields sets the fields covered by free-text search.
func WithFields(fields ...lexical.Field) Option {
	return func(o *options) {
		o.fields = fields
	}
}

// WithClock sets the clock used for expiry and recency decisions.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
//	metrics := &dictionary.BasicMetricsCollector{}
//	d, _ := dictionary.New(dictionary.WithMetricsCollector(metrics))
//	// ... use d ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
//	logger := dictionary.NewJSONLogger(slog.LevelInfo)
//	d, _ := dictionary.New(dictionary.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithStore sets the blob store holding catalog snapshots. Default: an
// in-memory store.
func WithStore(s blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithCompression sets the compression of imported snapshots. Default: zstd.
func WithCompression(c codec.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCacheCapacity bounds the total number of items held by cached
// catalogs. Default: DefaultCacheCapacity.
func WithCacheCapacity(items int64) Option {
	return func(o *options) {
		o.cacheCapacity = items
	}
}

// WithRankingMode selects the ranking used by Rank and LegacySearch.
func WithRankingMode(m ranking.Mode) Option {
	return func(o *options) {
		o.rankingMode = m
	}
}

// WithResourceController bounds concurrent catalog loads, snapshot read
// throughput and cached items.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resource = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		now:              time.Now,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		compression:      codec.CompressionZSTD,
		cacheCapacity:    DefaultCacheCapacity,
		rankingMode:      ranking.ModeDefault,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.store == nil {
		o.store = blobstore.NewMemoryStore()
	}
	return o
}
