package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozilla/glean-dictionary/blobstore"
	"github.com/mozilla/glean-dictionary/codec"
	"github.com/mozilla/glean-dictionary/model"
	"github.com/mozilla/glean-dictionary/resource"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func fixture() model.Collection {
	return model.Collection{
		{Name: "metric.one", Tags: []string{"TopSites"}, Type: "string", Description: "abc def", Expires: model.ParseExpiry("2027-01-01")},
		{Name: "metric.two", Origin: "glean-core", Type: "string", Description: "ghi jkl", Expires: model.ExpiresAtVersion(120), LatestFxReleaseVersion: model.Version(118)},
		{Name: "metric.three", Origin: "sync", Tags: []string{"Foo", "Bar"}, Type: "event", Description: "mno pqr test", InSource: model.Bool(false)},
		{Name: "metric.four", Tags: []string{"Foo"}, Origin: "sync", Type: "string", Description: "tuv wxy", Expires: model.NeverExpires()},
	}
}

func newStore(blobs blobstore.BlobStore, opts ...StoreOption) *Store {
	return NewStore(blobs, append([]StoreOption{WithClock(func() time.Time { return now })}, opts...)...)
}

func TestStore_SaveLoad(t *testing.T) {
	for _, c := range []codec.Compression{codec.CompressionZSTD, codec.CompressionLZ4, codec.CompressionNone} {
		t.Run(c.String(), func(t *testing.T) {
			ctx := context.Background()
			store := newStore(blobstore.NewMemoryStore(), WithCompression(c))

			saved, err := store.Save(ctx, "fenix", fixture())
			require.NoError(t, err)
			assert.Equal(t, uint64(1), saved.Version)

			ptr, err := store.Current(ctx, "fenix")
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("apps/fenix/catalog-1-%08x.json%s", ptr.Checksum, c.Extension()), ptr.Path)
			assert.True(t, ptr.HasChecksum)

			snap, err := store.Load(ctx, "fenix")
			require.NoError(t, err)
			assert.Equal(t, "fenix", snap.App)
			assert.Equal(t, uint64(1), snap.Version)
			assert.True(t, now.Equal(snap.CreatedAt))
			assert.Equal(t, fixture().Names(), snap.Items.Names())

			assert.Equal(t, model.ExpiryDate, snap.Items[0].Expires.Kind)
			assert.Equal(t, model.ExpiryVersion, snap.Items[1].Expires.Kind)
			assert.Equal(t, 120.0, snap.Items[1].Expires.Version)
			assert.Equal(t, model.Version(118), snap.Items[1].LatestFxReleaseVersion)
			assert.Equal(t, model.Bool(false), snap.Items[2].InSource)
			assert.True(t, snap.Items[3].Expires.IsNever())
		})
	}
}

func TestStore_SaveAdvancesCurrent(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemoryStore()
	store := newStore(blobs)

	_, err := store.Save(ctx, "fenix", fixture())
	require.NoError(t, err)
	saved, err := store.Save(ctx, "fenix", fixture()[:2])
	require.NoError(t, err)
	assert.Equal(t, uint64(2), saved.Version)

	snap, err := store.Load(ctx, "fenix")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Version)
	assert.Equal(t, []string{"metric.one", "metric.two"}, snap.Items.Names())

	// Old snapshots stay in place.
	names, err := blobs.List(ctx, "apps/fenix/")
	require.NoError(t, err)
	require.Len(t, names, 3)
	assert.Equal(t, "apps/fenix/CURRENT", names[0])
	assert.Regexp(t, `^apps/fenix/catalog-1-[0-9a-f]{8}\.json\.zst$`, names[1])
	assert.Regexp(t, `^apps/fenix/catalog-2-[0-9a-f]{8}\.json\.zst$`, names[2])
}

// pointerGate holds the first CURRENT write until release is closed.
type pointerGate struct {
	blobstore.BlobStore
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func newPointerGate(blobs blobstore.BlobStore) *pointerGate {
	g := &pointerGate{BlobStore: blobs, entered: make(chan struct{}), release: make(chan struct{})}
	g.armed.Store(true)
	return g
}

func (g *pointerGate) Put(ctx context.Context, name string, data []byte) error {
	if strings.HasSuffix(name, "/CURRENT") && g.armed.CompareAndSwap(true, false) {
		close(g.entered)
		<-g.release
	}
	return g.BlobStore.Put(ctx, name, data)
}

func TestStore_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemoryStore()
	gate := newPointerGate(blobs)
	store := newStore(gate)

	first := make(chan error, 1)
	go func() {
		_, err := store.Save(ctx, "fenix", fixture()[:1])
		first <- err
	}()
	<-gate.entered

	// Both writers picked version 1; the second one finishes first.
	second, err := store.Save(ctx, "fenix", fixture()[1:3])
	require.NoError(t, err)
	assert.Equal(t, uint64(1), second.Version)

	close(gate.release)
	require.NoError(t, <-first)

	names, err := blobs.List(ctx, "apps/fenix/catalog-")
	require.NoError(t, err)
	assert.Len(t, names, 2)

	// The last pointer write wins and still matches its blob.
	snap, err := store.Load(ctx, "fenix")
	require.NoError(t, err)
	assert.Equal(t, []string{"metric.one"}, snap.Items.Names())
}

type failingPointerStore struct {
	blobstore.BlobStore
}

func (s failingPointerStore) Put(ctx context.Context, name string, data []byte) error {
	if strings.HasSuffix(name, "/CURRENT") {
		return fmt.Errorf("commit refused")
	}
	return s.BlobStore.Put(ctx, name, data)
}

func TestStore_SaveRemovesUnpublishedSnapshot(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemoryStore()
	store := newStore(failingPointerStore{BlobStore: blobs})

	_, err := store.Save(ctx, "fenix", fixture())
	require.Error(t, err)

	names, err := blobs.List(ctx, "apps/fenix/")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_SaveDropsNilItems(t *testing.T) {
	store := newStore(blobstore.NewMemoryStore())
	snap, err := store.Save(context.Background(), "glam", model.Collection{nil, {Name: "a"}, nil})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, snap.Items.Names())
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemoryStore()
	store := newStore(blobs)

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrAppNotFound)

	for _, name := range []string{"", ".", "..", "a/b", "fenix app", "../etc"} {
		_, err := store.Save(ctx, name, fixture())
		assert.ErrorIs(t, err, ErrInvalidAppName, name)
	}

	t.Run("checksum mismatch", func(t *testing.T) {
		_, err := store.Save(ctx, "fenix", fixture())
		require.NoError(t, err)
		ptr, err := store.Current(ctx, "fenix")
		require.NoError(t, err)
		require.NoError(t, blobs.Put(ctx, ptr.Path, []byte("garbage")))

		_, err = store.Load(ctx, "fenix")
		var corrupt *ErrSnapshotCorrupt
		require.ErrorAs(t, err, &corrupt)
		assert.Equal(t, ptr.Path, corrupt.Path)
	})

	t.Run("undecodable without checksum", func(t *testing.T) {
		require.NoError(t, blobs.Put(ctx, "apps/glam/catalog-7.json.lz4", []byte("garbage")))
		require.NoError(t, blobs.Put(ctx, "apps/glam/CURRENT", []byte("apps/glam/catalog-7.json.lz4\n")))

		_, err := store.Load(ctx, "glam")
		var corrupt *ErrSnapshotCorrupt
		assert.ErrorAs(t, err, &corrupt)

		// Versions continue from the pointer.
		snap, err := store.Save(ctx, "glam", fixture())
		require.NoError(t, err)
		assert.Equal(t, uint64(8), snap.Version)
	})

	t.Run("dangling pointer", func(t *testing.T) {
		require.NoError(t, blobs.Put(ctx, "apps/ghost/CURRENT", []byte("apps/ghost/catalog-1.json.zst 00000000")))
		_, err := store.Load(ctx, "ghost")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}

func TestStore_Apps(t *testing.T) {
	ctx := context.Background()
	store := newStore(blobstore.NewLocalStore(t.TempDir()))

	apps, err := store.Apps(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)

	for _, app := range []string{"glam", "fenix", "firefox_desktop"} {
		_, err := store.Save(ctx, app, fixture())
		require.NoError(t, err)
	}
	apps, err = store.Apps(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fenix", "firefox_desktop", "glam"}, apps)
}

func TestStore_LoadAll(t *testing.T) {
	ctx := context.Background()
	rc := resource.NewController(resource.Config{MaxConcurrentLoads: 2, ReadBytesPerSec: 1 << 20})
	store := newStore(blobstore.NewMemoryStore(), WithResourceController(rc))

	var apps []string
	for i := range 6 {
		app := fmt.Sprintf("app%d", i)
		apps = append(apps, app)
		_, err := store.Save(ctx, app, fixture()[:i%4+1])
		require.NoError(t, err)
	}

	snaps, err := store.LoadAll(ctx, apps)
	require.NoError(t, err)
	require.Len(t, snaps, 6)
	for i, app := range apps {
		assert.Len(t, snaps[app].Items, i%4+1)
	}

	_, err = store.LoadAll(ctx, append(apps, "missing"))
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestParsePointer(t *testing.T) {
	p, err := ParsePointer([]byte("apps/fenix/catalog-12.json.zst 0000beef\n"))
	require.NoError(t, err)
	assert.Equal(t, uint32(0xbeef), p.Checksum)
	v, ok := p.Version()
	assert.True(t, ok)
	assert.Equal(t, uint64(12), v)
	assert.Equal(t, "apps/fenix/catalog-12.json.zst 0000beef\n", p.String())

	v, ok = Pointer{Path: "apps/fenix/catalog-3-9a1c03f2.json.zst"}.Version()
	assert.True(t, ok)
	assert.Equal(t, uint64(3), v)

	_, ok = Pointer{Path: "apps/fenix/latest.json"}.Version()
	assert.False(t, ok)

	_, err = ParsePointer([]byte("a b c"))
	assert.Error(t, err)
	_, err = ParsePointer([]byte("a zz"))
	assert.Error(t, err)
}

func TestCatalog_Search(t *testing.T) {
	cat := New("fenix", fixture(), nil)
	assert.Equal(t, 4, cat.Len())

	got, err := cat.Search("string")
	require.NoError(t, err)
	assert.Equal(t, []string{"metric.one", "metric.two", "metric.four"}, got.Names())

	got, err = cat.Search("tags:Foo origin:sync")
	require.NoError(t, err)
	assert.Equal(t, []string{"metric.three", "metric.four"}, got.Names())
}

func TestCatalog_IndexBuiltOnce(t *testing.T) {
	snap := &Snapshot{App: "fenix", Version: 3, CreatedAt: now, Items: fixture()}
	cat := FromSnapshot(snap, nil)
	assert.Equal(t, uint64(3), cat.Version)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cat.Search("sync")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Same(t, cat.Index(), cat.Index())
	assert.Equal(t, 4, cat.Index().Len())

	items := cat.Items()
	items[0] = nil
	assert.NotNil(t, cat.Items()[0])
}
