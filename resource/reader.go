package resource

import (
	"context"
	"io"
)

// RateLimitedReader throttles reads through a Controller.
type RateLimitedReader struct {
	ctx context.Context
	r   io.Reader
	rc  *Controller
}

// NewRateLimitedReader wraps r.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *RateLimitedReader {
	return &RateLimitedReader{ctx: ctx, r: r, rc: rc}
}

// Read waits for len(p) bytes of budget, then reads.
func (r *RateLimitedReader) Read(p []byte) (int, error) {
	if err := r.rc.AcquireRead(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
