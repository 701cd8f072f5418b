package network

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// cacheEntry is a cached response body.
type cacheEntry struct {
	body        []byte
	contentType string
	storedAt    time.Time
	expires     time.Time
}

// Cache keeps response bodies in memory, keyed by URL. When full, the oldest
// entry is evicted.
type Cache struct {
	entries    map[string]*cacheEntry
	maxEntries int
	defaultTTL time.Duration
	now        func() time.Time
	mu         sync.Mutex
}

// NewCache creates a cache holding at most maxEntries bodies. Entries without
// a Cache-Control max-age live for defaultTTL.
func NewCache(maxEntries int, defaultTTL time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Cache{
		entries:    make(map[string]*cacheEntry),
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns a fresh cached response for url.
func (c *Cache) Get(url string) (*Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[url]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expires) {
		delete(c.entries, url)
		return nil, false
	}
	return &Response{
		StatusCode:  http.StatusOK,
		Body:        entry.body,
		ContentType: entry.contentType,
		Cached:      true,
	}, true
}

// Set stores resp unless its headers forbid caching.
func (c *Cache) Set(url string, resp *Response) {
	ttl := c.defaultTTL
	if resp.header != nil {
		maxAge, hasMaxAge, noStore := parseCacheControl(resp.header.Get("Cache-Control"))
		if noStore {
			return
		}
		if hasMaxAge {
			ttl = maxAge
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[url]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	now := c.now()
	c.entries[url] = &cacheEntry{
		body:        resp.Body,
		contentType: resp.ContentType,
		storedAt:    now,
		expires:     now.Add(ttl),
	}
}

// Delete removes an entry from the cache.
func (c *Cache) Delete(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, url)
}

// Len returns the number of entries in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cleanup removes expired entries and returns how many were removed.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now, removed := c.now(), 0
	for url, entry := range c.entries {
		if !now.Before(entry.expires) {
			delete(c.entries, url)
			removed++
		}
	}
	return removed
}

// evictOldest must be called with c.mu held.
func (c *Cache) evictOldest() {
	var oldestURL string
	var oldest time.Time
	for url, entry := range c.entries {
		if oldestURL == "" || entry.storedAt.Before(oldest) {
			oldestURL, oldest = url, entry.storedAt
		}
	}
	if oldestURL != "" {
		delete(c.entries, oldestURL)
	}
}

// parseCacheControl extracts max-age and no-store from a Cache-Control value.
func parseCacheControl(value string) (maxAge time.Duration, hasMaxAge, noStore bool) {
	for _, d := range strings.Split(value, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		switch {
		case d == "no-store":
			noStore = true
		case strings.HasPrefix(d, "max-age="):
			if seconds, err := strconv.Atoi(d[len("max-age="):]); err == nil && seconds >= 0 {
				maxAge, hasMaxAge = time.Duration(seconds)*time.Second, true
			}
		}
	}
	return maxAge, hasMaxAge, noStore
}
