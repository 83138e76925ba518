// Package resource bounds the work done while loading catalog snapshots.
//
// A Controller manages three budgets:
//
//   - Loads: how many snapshots may be fetched and decoded at once
//   - Items: how many items the loaded catalogs may hold in total
//   - Reads: snapshot bytes read per second
//
// # Load Concurrency
//
//	rc := resource.NewController(resource.Config{MaxConcurrentLoads: 4})
//
//	if err := rc.AcquireLoad(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseLoad()
//
// # Item Budget
//
// AcquireItems never blocks. It returns ErrItemBudgetExceeded when the
// budget would be exceeded and the caller decides what to evict.
//
// # Read Throughput
//
// A token bucket limits snapshot reads. NewRateLimitedReader wraps an
// io.Reader so that every Read waits for tokens first:
//
//	r := resource.NewRateLimitedReader(ctx, blob, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller as "no limits".
package resource
