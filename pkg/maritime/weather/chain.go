package weather

import (
	"context"
	"time"

	"maritime-assistant-be/pkg/cache"
	"maritime-assistant-be/pkg/maritime"
)

// FallbackProvider tries Primary and answers from Secondary when it fails.
type FallbackProvider struct {
	Primary   Provider
	Secondary Provider
}

func (p *FallbackProvider) Lookup(ctx context.Context, location string) (Result, error) {
	r, err := p.Primary.Lookup(ctx, location)
	if err == nil {
		return r, nil
	}
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	return p.Secondary.Lookup(ctx, location)
}

// CachedProvider memoizes successful lookups per normalized location.
type CachedProvider struct {
	Next  Provider
	Cache cache.Cache
	TTL   time.Duration
}

func (p *CachedProvider) Lookup(ctx context.Context, location string) (Result, error) {
	key := "weather:" + maritime.NormalizePortName(location)

	var cached Result
	if found, err := p.Cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	r, err := p.Next.Lookup(ctx, location)
	if err != nil {
		return Result{}, err
	}
	_ = p.Cache.Set(ctx, key, r, p.TTL)
	return r, nil
}
