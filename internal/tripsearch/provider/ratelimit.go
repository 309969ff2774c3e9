package provider

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
)

// rateLimiter hands out call slots at least interval apart. A caller that
// gives up still consumes its slot.
type rateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) Wait(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}

	r.mu.Lock()
	now := time.Now()
	slot := r.next
	if slot.Before(now) {
		slot = now
	}
	r.next = slot.Add(r.interval)
	r.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type rateLimitedSource struct {
	source  OfferSource
	limiter *rateLimiter
}

// NewRateLimitedSource spaces calls to s at least interval apart.
func NewRateLimitedSource(s OfferSource, interval time.Duration) OfferSource {
	return &rateLimitedSource{
		source:  s,
		limiter: newRateLimiter(interval),
	}
}

func (r *rateLimitedSource) Name() entity.Source {
	return r.source.Name()
}

func (r *rateLimitedSource) Search(ctx context.Context, req SearchRequest) ([]entity.RawOffer, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.source.Search(ctx, req)
}
