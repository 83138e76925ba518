package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrItemBudgetExceeded is returned when the item budget would be exceeded.
var ErrItemBudgetExceeded = errors.New("item budget exceeded")

// Config holds resource limits.
type Config struct {
	// MaxConcurrentLoads is the maximum number of snapshot loads in flight.
	// If 0, defaults to 4.
	MaxConcurrentLoads int64

	// ItemBudget is the hard limit on items held by loaded catalogs.
	// If 0, items are only tracked.
	ItemBudget int64

	// ReadBytesPerSec limits snapshot read throughput. If 0, unlimited.
	ReadBytesPerSec int64
}

// Controller manages load concurrency, the item budget and read throughput.
type Controller struct {
	cfg Config

	loadSem *semaphore.Weighted

	itemSem  *semaphore.Weighted // nil if unlimited
	itemUsed atomic.Int64

	readLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentLoads <= 0 {
		cfg.MaxConcurrentLoads = 4
	}

	c := &Controller{
		cfg:     cfg,
		loadSem: semaphore.NewWeighted(cfg.MaxConcurrentLoads),
	}
	if cfg.ItemBudget > 0 {
		c.itemSem = semaphore.NewWeighted(cfg.ItemBudget)
	}
	if cfg.ReadBytesPerSec > 0 {
		c.readLimiter = rate.NewLimiter(rate.Limit(cfg.ReadBytesPerSec), int(cfg.ReadBytesPerSec))
	}
	return c
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireLoad reserves a load slot, blocking until one is free or ctx ends.
func (c *Controller) AcquireLoad(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.loadSem.Acquire(ctx, 1)
}

// ReleaseLoad releases a load slot.
func (c *Controller) ReleaseLoad() {
	if c == nil {
		return
	}
	c.loadSem.Release(1)
}

// AcquireItems reserves n items of the budget.
// Non-blocking - callers control eviction.
func (c *Controller) AcquireItems(n int64) error {
	if c == nil || n <= 0 {
		return nil
	}
	if c.itemSem != nil && !c.itemSem.TryAcquire(n) {
		return ErrItemBudgetExceeded
	}
	c.itemUsed.Add(n)
	return nil
}

// ReleaseItems returns n items to the budget.
func (c *Controller) ReleaseItems(n int64) {
	if c == nil || n <= 0 {
		return
	}
	if c.itemSem != nil {
		c.itemSem.Release(n)
	}
	c.itemUsed.Add(-n)
}

// ItemUsage returns the number of reserved items.
func (c *Controller) ItemUsage() int64 {
	if c == nil {
		return 0
	}
	return c.itemUsed.Load()
}

// ItemBudget returns the configured item budget (0 if unlimited).
func (c *Controller) ItemBudget() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.ItemBudget
}

// AcquireRead waits until the read limit allows n bytes. Requests larger
// than the bucket are split into bucket-sized waits.
func (c *Controller) AcquireRead(ctx context.Context, n int) error {
	if c == nil || c.readLimiter == nil {
		return nil
	}
	burst := c.readLimiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := c.readLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
