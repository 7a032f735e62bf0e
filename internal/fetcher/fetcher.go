package fetcher

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"vintedwatch/helpers"
	apperr "vintedwatch/pkg/errors"
	"vintedwatch/services/cache"
)

// Fetcher retrieves the raw markup of a catalog page. The fetch is the only
// long-latency step of a poll cycle and may fail with transport or render
// errors; callers isolate those failures per watch unit.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// backoff guards a fetch target with a memcache block key: when the key is
// present the target is rate limited and the fetch fails fast.
type backoff struct {
	cacheSvc  cache.CacheService
	cacheKey  string
	blockTime time.Duration
}

func (b *backoff) blocked() error {
	if b.cacheSvc == nil || b.cacheKey == "" {
		return nil
	}
	if _, err := b.cacheSvc.Get(b.cacheKey); err == nil {
		return apperr.NewRateLimit(b.cacheKey, b.blockTime)
	}
	return nil
}

func (b *backoff) block() {
	if b.cacheSvc == nil || b.cacheKey == "" {
		return
	}
	b.cacheSvc.Set(b.cacheKey, []byte(fmt.Sprintf("%d", b.blockTime/time.Second)), b.blockTime)
}

// HTTPFetcher fetches pages with a plain GET using randomized browser
// headers. Listing pages that render their grid server-side work with this;
// use BrowserFetcher when client-side rendering is required.
type HTTPFetcher struct {
	backoff
}

// NewHTTPFetcher creates a plain HTTP fetcher with rate-limit backoff
func NewHTTPFetcher(cacheSvc cache.CacheService, cacheKey string, blockTime time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		backoff: backoff{cacheSvc: cacheSvc, cacheKey: cacheKey, blockTime: blockTime},
	}
}

// Fetch retrieves the page markup
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.blocked(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := helpers.FetchWithRandomHeaders(url)
	if err != nil {
		if strings.HasPrefix(err.Error(), "rate limited") {
			f.block()
		}
		return "", apperr.NewFetch(url, "http fetch failed", err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", apperr.NewFetch(url, "failed to read page body", err)
	}
	return string(data), nil
}
