package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mozilla/glean-dictionary/blobstore"
	"github.com/mozilla/glean-dictionary/codec"
	"github.com/mozilla/glean-dictionary/internal/hash"
	"github.com/mozilla/glean-dictionary/model"
	"github.com/mozilla/glean-dictionary/resource"
)

// Store reads and writes snapshots in a blob store.
type Store struct {
	blobs       blobstore.BlobStore
	compression codec.Compression
	rc          *resource.Controller
	now         func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCompression sets the compression of new snapshots. Default: zstd.
func WithCompression(c codec.Compression) StoreOption {
	return func(s *Store) {
		s.compression = c
	}
}

// WithResourceController bounds concurrent loads and read throughput.
func WithResourceController(rc *resource.Controller) StoreOption {
	return func(s *Store) {
		s.rc = rc
	}
}

// WithClock sets the clock used for CreatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a snapshot store over blobs.
func NewStore(blobs blobstore.BlobStore, opts ...StoreOption) *Store {
	s := &Store{
		blobs:       blobs,
		compression: codec.CompressionZSTD,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateAppName checks that app can be used as a single path segment.
// Letters, digits, '_', '-' and '.' are allowed.
func ValidateAppName(app string) error {
	if app == "" || app == "." || app == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidAppName, app)
	}
	for _, r := range app {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAppName, app)
		}
	}
	return nil
}

// Current returns app's pointer.
func (s *Store) Current(ctx context.Context, app string) (Pointer, error) {
	if err := ValidateAppName(app); err != nil {
		return Pointer{}, err
	}
	data, err := blobstore.ReadAll(ctx, s.blobs, CurrentName(app))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return Pointer{}, fmt.Errorf("%w: %s", ErrAppNotFound, app)
		}
		return Pointer{}, err
	}
	return ParsePointer(data)
}

// Save writes items as the next snapshot of app and advances CURRENT.
// Nil items are dropped.
func (s *Store) Save(ctx context.Context, app string, items model.Collection) (*Snapshot, error) {
	if err := ValidateAppName(app); err != nil {
		return nil, err
	}

	var next uint64 = 1
	cur, err := s.Current(ctx, app)
	switch {
	case err == nil:
		if v, ok := cur.Version(); ok {
			next = v + 1
		}
	case errors.Is(err, ErrAppNotFound):
	default:
		return nil, err
	}

	kept := make(model.Collection, 0, len(items))
	for _, it := range items {
		if it != nil {
			kept = append(kept, it)
		}
	}
	snap := &Snapshot{
		App:       app,
		Version:   next,
		CreatedAt: s.now().UTC(),
		Items:     kept,
	}

	data, err := Encode(snap, s.compression)
	if err != nil {
		return nil, err
	}
	sum := hash.CRC32C(data)
	name := SnapshotName(app, next, sum, s.compression)
	if err := s.blobs.Put(ctx, name, data); err != nil {
		return nil, fmt.Errorf("write snapshot %s: %w", name, err)
	}

	ptr := Pointer{Path: name, Checksum: sum, HasChecksum: true}
	if err := s.blobs.Put(ctx, CurrentName(app), []byte(ptr.String())); err != nil {
		// The snapshot was never published.
		_ = s.blobs.Delete(ctx, name)
		return nil, fmt.Errorf("advance %s: %w", CurrentName(app), err)
	}
	return snap, nil
}

// Load reads app's current snapshot.
func (s *Store) Load(ctx context.Context, app string) (*Snapshot, error) {
	if err := s.rc.AcquireLoad(ctx); err != nil {
		return nil, err
	}
	defer s.rc.ReleaseLoad()

	ptr, err := s.Current(ctx, app)
	if err != nil {
		return nil, err
	}

	data, err := s.read(ctx, ptr.Path)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, &ErrSnapshotCorrupt{Path: ptr.Path, Err: err}
		}
		return nil, err
	}
	if ptr.HasChecksum {
		if sum := hash.CRC32C(data); sum != ptr.Checksum {
			return nil, &ErrSnapshotCorrupt{
				Path: ptr.Path,
				Err:  fmt.Errorf("checksum mismatch: got %08x, want %08x", sum, ptr.Checksum),
			}
		}
	}

	snap, err := Decode(data, codec.FromName(ptr.Path))
	if err != nil {
		return nil, &ErrSnapshotCorrupt{Path: ptr.Path, Err: err}
	}
	if snap.App == "" {
		snap.App = app
	}
	return snap, nil
}

func (s *Store) read(ctx context.Context, name string) ([]byte, error) {
	b, err := s.blobs.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()

	r := resource.NewRateLimitedReader(ctx, blobstore.NewReader(ctx, b), s.rc)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Apps lists the applications with at least one blob in the store, sorted.
func (s *Store) Apps(ctx context.Context) ([]string, error) {
	names, err := s.blobs.List(ctx, appsPrefix)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	apps := []string{}
	for _, name := range names {
		rest, ok := strings.CutPrefix(name, appsPrefix)
		if !ok {
			continue
		}
		app, _, ok := strings.Cut(rest, "/")
		if !ok || ValidateAppName(app) != nil {
			continue
		}
		if _, dup := seen[app]; dup {
			continue
		}
		seen[app] = struct{}{}
		apps = append(apps, app)
	}
	sort.Strings(apps)
	return apps, nil
}

// LoadAll loads the snapshots of apps concurrently. It fails on the first
// error.
func (s *Store) LoadAll(ctx context.Context, apps []string) (map[string]*Snapshot, error) {
	limit := int(s.rc.Config().MaxConcurrentLoads)
	if limit <= 0 {
		limit = 4
	}

	var (
		mu  sync.Mutex
		out = make(map[string]*Snapshot, len(apps))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, app := range apps {
		g.Go(func() error {
			snap, err := s.Load(gctx, app)
			if err != nil {
				return fmt.Errorf("load %s: %w", app, err)
			}
			mu.Lock()
			out[app] = snap
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
