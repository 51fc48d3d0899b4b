// Package fetcher turns a URL into raw article text. It downloads the page,
// keeps paragraph elements long enough to be prose, and caches results for a
// while so repeated analyses of the same page do not refetch it.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seo-intel/backend/stats"
)

// ErrSourceUnavailable means the page could not be fetched or contained no
// usable text. Fatal to the request that asked for it.
var ErrSourceUnavailable = errors.New("source unavailable")

const (
	userAgent        = "SEOContentIntel/1.0"
	minParagraphLen  = 40 // characters; shorter <p> elements are boilerplate
	maxCacheEntries  = 500
	cleanupInterval  = 5 * time.Minute
	maxResponseBytes = 10 << 20
)

type cacheEntry struct {
	text      string
	timestamp time.Time
}

// Fetcher fetches and extracts article text with a TTL result cache.
type Fetcher struct {
	client      *http.Client
	cacheMutex  sync.RWMutex
	cache       map[string]cacheEntry
	cacheTTL    time.Duration
	lastCleanup time.Time
	stats       *stats.Storage
	log         *slog.Logger
}

// New builds a Fetcher with connection pooling and the given request timeout.
func New(timeout, cacheTTL time.Duration, st *stats.Storage, log *slog.Logger) *Fetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		cache:       make(map[string]cacheEntry),
		cacheTTL:    cacheTTL,
		lastCleanup: time.Now(),
		stats:       st,
		log:         log,
	}
}

// Fetch returns the extracted article text for url. Network errors, bad
// status codes, and pages without usable paragraphs all wrap
// ErrSourceUnavailable.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if text, ok := f.cached(url); ok {
		f.stats.RecordFetchCache(true)
		return text, nil
	}
	f.stats.RecordFetchCache(false)

	text, err := f.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	f.store(url, text)
	return text, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d from %s", ErrSourceUnavailable, resp.StatusCode, url)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	text, err := ExtractText(buf.Bytes())
	if err != nil {
		return "", err
	}

	f.log.Debug("fetched page",
		slog.String("url", url),
		slog.Int("bytes", buf.Len()),
		slog.Int("text_length", len(text)))
	return text, nil
}

// ExtractText pulls prose out of an HTML document: every <p> element whose
// text exceeds the paragraph length floor, joined by newlines.
func ExtractText(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", ErrSourceUnavailable, err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > minParagraphLen {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		return "", fmt.Errorf("%w: no usable text found", ErrSourceUnavailable)
	}
	return strings.Join(paragraphs, "\n"), nil
}

func (f *Fetcher) cached(url string) (string, bool) {
	f.cacheMutex.RLock()
	defer f.cacheMutex.RUnlock()
	entry, found := f.cache[url]
	if found && time.Since(entry.timestamp) < f.cacheTTL {
		return entry.text, true
	}
	return "", false
}

func (f *Fetcher) store(url, text string) {
	f.cacheMutex.Lock()
	f.cache[url] = cacheEntry{text: text, timestamp: time.Now()}
	needsCleanup := len(f.cache) > maxCacheEntries || time.Since(f.lastCleanup) > cleanupInterval
	f.cacheMutex.Unlock()

	if needsCleanup {
		f.cleanup()
	}
}

// cleanup drops expired entries, then evicts oldest-first until under the
// size cap.
func (f *Fetcher) cleanup() {
	f.cacheMutex.Lock()
	defer f.cacheMutex.Unlock()

	now := time.Now()
	for url, entry := range f.cache {
		if now.Sub(entry.timestamp) > f.cacheTTL {
			delete(f.cache, url)
		}
	}

	for len(f.cache) > maxCacheEntries {
		oldestURL := ""
		var oldest time.Time
		for url, entry := range f.cache {
			if oldestURL == "" || entry.timestamp.Before(oldest) {
				oldestURL = url
				oldest = entry.timestamp
			}
		}
		delete(f.cache, oldestURL)
	}

	f.lastCleanup = now
}

// CacheSize reports the number of cached pages.
func (f *Fetcher) CacheSize() int {
	f.cacheMutex.RLock()
	defer f.cacheMutex.RUnlock()
	return len(f.cache)
}
