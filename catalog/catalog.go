package catalog

import (
	"sync"
	"time"

	"github.com/mozilla/glean-dictionary/lexical"
	"github.com/mozilla/glean-dictionary/model"
	"github.com/mozilla/glean-dictionary/query"
)

// Catalog is an application's items plus their search index. The index is
// built on first use and shared by concurrent readers.
type Catalog struct {
	App       string
	Version   uint64
	CreatedAt time.Time

	items  model.Collection
	engine *query.Engine

	once  sync.Once
	index lexical.Index
}

// New creates a catalog. A nil engine uses query.New().
func New(app string, items model.Collection, engine *query.Engine) *Catalog {
	if engine == nil {
		engine = query.New()
	}
	return &Catalog{App: app, items: items, engine: engine}
}

// FromSnapshot creates a catalog holding the snapshot's items.
func FromSnapshot(s *Snapshot, engine *query.Engine) *Catalog {
	c := New(s.App, s.Items, engine)
	c.Version = s.Version
	c.CreatedAt = s.CreatedAt
	return c
}

// Items returns the catalog's items in stored order.
func (c *Catalog) Items() model.Collection {
	return c.items.Clone()
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Index returns the search index, building it on first call.
func (c *Catalog) Index() lexical.Index {
	c.once.Do(func() {
		c.index = c.engine.BuildIndex(c.items)
	})
	return c.index
}

// Search runs a query against the catalog.
func (c *Catalog) Search(raw string) (model.Collection, error) {
	return c.engine.Search(raw, c.items, c.Index())
}
