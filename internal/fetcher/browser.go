package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperr "vintedwatch/pkg/errors"
	"vintedwatch/services/cache"
)

// pageFunction is executed inside the headless browser: load the page, let
// it settle, scroll to the bottom to trigger lazy-loaded cards, settle
// again, then return the rendered markup.
const pageFunction = `module.exports = async ({ page, context }) => {
	await page.setViewport({ width: 1920, height: 1080 });
	await page.setUserAgent('Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36');

	await page.goto(context.url, { timeout: 45000 });
	await page.waitForTimeout(context.renderWaitMs);
	await page.evaluate(() => window.scrollTo(0, document.body.scrollHeight));
	await page.waitForTimeout(context.scrollWaitMs);

	return await page.content();
}`

// BrowserFetcher fetches rendered pages through a browserless instance's
// /function endpoint.
type BrowserFetcher struct {
	backoff
	addr       string
	renderWait time.Duration
	scrollWait time.Duration
	client     *http.Client
}

// NewBrowserFetcher creates a browser-backed fetcher. renderWait and
// scrollWait are the settle periods after page load and after the
// scroll-to-bottom action.
func NewBrowserFetcher(addr string, renderWait, scrollWait time.Duration, cacheSvc cache.CacheService, cacheKey string, blockTime time.Duration) *BrowserFetcher {
	return &BrowserFetcher{
		backoff:    backoff{cacheSvc: cacheSvc, cacheKey: cacheKey, blockTime: blockTime},
		addr:       addr,
		renderWait: renderWait,
		scrollWait: scrollWait,
		client:     &http.Client{Timeout: 90 * time.Second},
	}
}

// Fetch retrieves the rendered page markup
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.blocked(); err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"code": pageFunction,
		"context": map[string]interface{}{
			"url":          url,
			"renderWaitMs": f.renderWait.Milliseconds(),
			"scrollWaitMs": f.scrollWait.Milliseconds(),
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", apperr.NewFetch(url, "failed to marshal page function payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.addr+"/function", bytes.NewReader(data))
	if err != nil {
		return "", apperr.NewFetch(url, "failed to create browser request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.block()
		return "", apperr.NewFetch(url, "browser request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.block()
		return "", apperr.NewFetch(url, fmt.Sprintf("browser endpoint returned status %d", resp.StatusCode), nil)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.NewFetch(url, "failed to read browser response", err)
	}

	content := extractHTML(bodyBytes)
	if !strings.Contains(content, "<html") && !strings.Contains(content, "<body") {
		f.block()
		return "", apperr.NewFetch(url, fmt.Sprintf("invalid or empty HTML response (%d bytes)", len(content)), nil)
	}

	return content, nil
}

// extractHTML unwraps JSON envelopes some browserless versions return around
// the page content; plain HTML passes through untouched.
func extractHTML(body []byte) string {
	content := string(body)
	if !strings.HasPrefix(strings.TrimSpace(content), "{") {
		return content
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return content
	}

	for _, field := range []string{"data", "content", "result", "html"} {
		if html, ok := result[field].(string); ok && html != "" {
			return html
		}
		if nested, ok := result[field].(map[string]interface{}); ok {
			if html, ok := nested["content"].(string); ok && html != "" {
				return html
			}
		}
	}
	return content
}
