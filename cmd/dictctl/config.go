package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/caarlos0/env/v11"
	"gopkg.in/natefinch/lumberjack.v2"

	dictionary "github.com/mozilla/glean-dictionary"
	"github.com/mozilla/glean-dictionary/blobstore"
	minioblob "github.com/mozilla/glean-dictionary/blobstore/minio"
	s3blob "github.com/mozilla/glean-dictionary/blobstore/s3"
	"github.com/mozilla/glean-dictionary/codec"
	"github.com/mozilla/glean-dictionary/ranking"
	"github.com/mozilla/glean-dictionary/resource"
)

// Config is the dictctl configuration. Values come from defaults, then the
// TOML file, then the environment, then command-line flags.
type Config struct {
	// Store selects the snapshot store: local:<dir>, memory:,
	// s3://<bucket>/<prefix> or minio://<endpoint>/<bucket>/<prefix>.
	Store         string `toml:"store" env:"DICTCTL_STORE"`
	Compression   string `toml:"compression" env:"DICTCTL_COMPRESSION"`
	CacheCapacity int64  `toml:"cache_capacity" env:"DICTCTL_CACHE_CAPACITY"`
	RankingMode   string `toml:"ranking_mode" env:"DICTCTL_RANKING_MODE"`

	Log       LogConfig      `toml:"log"`
	Resources ResourceConfig `toml:"resources"`
	S3        S3Config       `toml:"s3"`
	MinIO     MinIOConfig    `toml:"minio"`
}

// LogConfig configures logging. Without File, logs go to stderr.
type LogConfig struct {
	Level      string `toml:"level" env:"DICTCTL_LOG_LEVEL"`
	Format     string `toml:"format" env:"DICTCTL_LOG_FORMAT"`
	File       string `toml:"file" env:"DICTCTL_LOG_FILE"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// ResourceConfig bounds snapshot loading.
type ResourceConfig struct {
	MaxConcurrentLoads int64 `toml:"max_concurrent_loads"`
	ItemBudget         int64 `toml:"item_budget"`
	ReadBytesPerSec    int64 `toml:"read_bytes_per_sec"`
}

// S3Config configures s3:// stores.
type S3Config struct {
	Region string `toml:"region" env:"DICTCTL_S3_REGION"`
	// DynamoDBTable enables the DynamoDB commit pointer when set.
	DynamoDBTable string `toml:"dynamodb_table" env:"DICTCTL_DYNAMODB_TABLE"`
}

// MinIOConfig configures minio:// stores.
type MinIOConfig struct {
	AccessKey string `toml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `toml:"secret_key" env:"MINIO_SECRET_KEY"`
	Secure    bool   `toml:"secure" env:"MINIO_SECURE"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Store:         "local:./dictionary-data",
		Compression:   "zstd",
		CacheCapacity: dictionary.DefaultCacheCapacity,
		RankingMode:   ranking.ModeDefault.String(),
		Log: LogConfig{
			Level:      "warn",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 10,
		},
	}
}

// LoadConfig reads path (if not empty) over the defaults and applies
// environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the logger described by c. The returned closer flushes
// the log file, if any.
func (c LogConfig) NewLogger(stderr io.Writer) (*dictionary.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", c.Level, err)
	}

	var asJSON bool
	switch strings.ToLower(c.Format) {
	case "", "text":
	case "json":
		asJSON = true
	default:
		return nil, nil, fmt.Errorf("log format %q: want text or json", c.Format)
	}

	if c.File == "" {
		return dictionary.NewWriterLogger(stderr, level, asJSON), nopCloser{}, nil
	}
	w := &lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
		Compress:   c.Compress,
	}
	return dictionary.NewWriterLogger(w, level, asJSON), w, nil
}

// Resource returns the resource controller, or nil when no limit is set.
func (c ResourceConfig) Resource() *resource.Controller {
	if c == (ResourceConfig{}) {
		return nil
	}
	return resource.NewController(resource.Config{
		MaxConcurrentLoads: c.MaxConcurrentLoads,
		ItemBudget:         c.ItemBudget,
		ReadBytesPerSec:    c.ReadBytesPerSec,
	})
}

var errUnknownStore = errors.New("unknown store")

// OpenStore opens the blob store named by c.Store.
func (c Config) OpenStore(ctx context.Context) (blobstore.BlobStore, error) {
	scheme, rest, ok := strings.Cut(c.Store, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownStore, c.Store)
	}

	switch scheme {
	case "memory":
		return blobstore.NewMemoryStore(), nil
	case "local":
		if rest == "" {
			return nil, fmt.Errorf("%w: local store needs a directory", errUnknownStore)
		}
		return blobstore.NewLocalStore(rest), nil
	case "s3":
		bucket, prefix := splitBucket(strings.TrimPrefix(rest, "//"))
		if bucket == "" {
			return nil, fmt.Errorf("%w: s3 store needs a bucket", errUnknownStore)
		}
		return c.openS3(ctx, bucket, prefix)
	case "minio":
		endpoint, path := splitBucket(strings.TrimPrefix(rest, "//"))
		bucket, prefix := splitBucket(path)
		if endpoint == "" || bucket == "" {
			return nil, fmt.Errorf("%w: minio store needs an endpoint and a bucket", errUnknownStore)
		}
		return minioblob.New(endpoint, c.MinIO.AccessKey, c.MinIO.SecretKey, c.MinIO.Secure, bucket, prefix)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownStore, c.Store)
	}
}

func (c Config) openS3(ctx context.Context, bucket, prefix string) (blobstore.BlobStore, error) {
	var opts []func(*config.LoadOptions) error
	if c.S3.Region != "" {
		opts = append(opts, config.WithRegion(c.S3.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	store := s3blob.NewStore(awss3.NewFromConfig(awsCfg), bucket, prefix)
	if c.S3.DynamoDBTable == "" {
		return store, nil
	}
	baseURI := "s3://" + bucket
	if prefix != "" {
		baseURI += "/" + prefix
	}
	return s3blob.NewDDBCommitStore(store, dynamodb.NewFromConfig(awsCfg), c.S3.DynamoDBTable, baseURI), nil
}

func splitBucket(s string) (string, string) {
	head, tail, _ := strings.Cut(s, "/")
	return head, strings.Trim(tail, "/")
}

// Options translates c into dictionary options.
func (c Config) Options() ([]dictionary.Option, error) {
	comp, err := codec.ParseCompression(c.Compression)
	if err != nil {
		return nil, err
	}
	mode, err := ranking.ParseMode(c.RankingMode)
	if err != nil {
		return nil, err
	}
	opts := []dictionary.Option{
		dictionary.WithCompression(comp),
		dictionary.WithCacheCapacity(c.CacheCapacity),
		dictionary.WithRankingMode(mode),
	}
	if rc := c.Resources.Resource(); rc != nil {
		opts = append(opts, dictionary.WithResourceController(rc))
	}
	return opts, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
