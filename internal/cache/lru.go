// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/vestiarium/internal/metrics"
)

// imageEntry represents an entry in the image LRU cache.
type imageEntry struct {
	key       string
	data      []byte
	mimeType  string
	prev      *imageEntry
	next      *imageEntry
	expiresAt time.Time
}

// ImageCache implements a thread-safe, byte-budgeted LRU cache for proxied
// product images.
//
// Catalog images are fetched repeatedly while the user composes outfits on the
// canvas, and the upstream CDNs the catalog links to are the slowest part of
// that path. Entries are keyed by source URL and evicted least-recently-used
// when the total byte budget is exceeded, so a handful of large images cannot
// pin the whole cache.
//
// Key features:
//   - O(1) Get, Add, Remove operations
//   - Eviction driven by total cached bytes, not entry count
//   - TTL support with lazy expiration
//   - Thread-safe operations
//
// This implementation uses a doubly-linked list for ordering and a hashmap for
// lookups.
type ImageCache struct {
	mu sync.Mutex

	// maxBytes is the total byte budget across all cached images
	maxBytes int64

	// totalBytes is the current sum of cached image sizes
	totalBytes int64

	// ttl is the time-to-live for entries
	ttl time.Duration

	// items maps source URLs to linked list nodes for O(1) lookup
	items map[string]*imageEntry

	// head and tail are sentinel nodes for the doubly-linked list
	// head.next is the most recently used, tail.prev is the least recently used
	head *imageEntry
	tail *imageEntry

	// stats
	hits   int64
	misses int64
}

// metric label for the proxy image cache
const imageCacheType = "proxy"

// NewImageCache creates a new image cache with the specified byte budget and TTL.
func NewImageCache(maxBytes int64, ttl time.Duration) *ImageCache {
	if maxBytes <= 0 {
		maxBytes = 64 << 20 // 64MB default budget
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	c := &ImageCache{
		maxBytes: maxBytes,
		ttl:      ttl,
		items:    make(map[string]*imageEntry),
		head:     &imageEntry{},
		tail:     &imageEntry{},
	}

	// Initialize linked list sentinels
	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// Get retrieves a cached image by source URL.
// Returns the raw bytes, MIME type, and true if found and not expired.
// Found entries are moved to the front (most recently used).
func (c *ImageCache) Get(url string) ([]byte, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[url]; exists {
		// Check if expired
		if time.Now().After(entry.expiresAt) {
			c.removeEntry(entry)
			c.misses++
			metrics.RecordCacheMiss(imageCacheType)
			metrics.RecordCacheEviction(imageCacheType, 1)
			metrics.SetCacheSize(imageCacheType, len(c.items))
			return nil, "", false
		}

		// Move to front (most recently used)
		c.moveToFront(entry)
		c.hits++
		metrics.RecordCacheHit(imageCacheType)
		return entry.data, entry.mimeType, true
	}

	c.misses++
	metrics.RecordCacheMiss(imageCacheType)
	return nil, "", false
}

// Add caches an image under its source URL.
//
// Images larger than a quarter of the byte budget are not cached at all; a
// single oversized download must not flush everything else. Adding an
// existing URL refreshes its data and TTL.
func (c *ImageCache) Add(url string, data []byte, mimeType string) {
	size := int64(len(data))
	if size == 0 || size > c.maxBytes/4 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)

	// Check if URL already exists
	if entry, exists := c.items[url]; exists {
		c.totalBytes += size - int64(len(entry.data))
		entry.data = data
		entry.mimeType = mimeType
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
	} else {
		entry := &imageEntry{
			key:       url,
			data:      data,
			mimeType:  mimeType,
			expiresAt: expiresAt,
		}
		c.addToFront(entry)
		c.items[url] = entry
		c.totalBytes += size
	}

	// Evict least recently used entries until within budget
	evicted := 0
	for c.totalBytes > c.maxBytes {
		if !c.evictOldest() {
			break
		}
		evicted++
	}
	if evicted > 0 {
		metrics.RecordCacheEviction(imageCacheType, evicted)
	}
	metrics.SetCacheSize(imageCacheType, len(c.items))
}

// Remove removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *ImageCache) Remove(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[url]; exists {
		c.removeEntry(entry)
		metrics.SetCacheSize(imageCacheType, len(c.items))
		return true
	}
	return false
}

// Len returns the current number of cached images.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// SizeBytes returns the current total size of cached image data.
func (c *ImageCache) SizeBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalBytes
}

// Clear removes all entries from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*imageEntry)
	c.head.next = c.tail
	c.tail.prev = c.head
	c.totalBytes = 0
	metrics.SetCacheSize(imageCacheType, 0)
}

// CleanupExpired removes all expired entries from the cache.
// Returns the number of entries removed.
func (c *ImageCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0

	// Walk from tail (oldest) to head (newest)
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
			removed++
		}
		entry = prev
	}

	if removed > 0 {
		metrics.RecordCacheEviction(imageCacheType, removed)
		metrics.SetCacheSize(imageCacheType, len(c.items))
	}
	return removed
}

// Stats returns cache hit/miss statistics and the current byte usage.
func (c *ImageCache) Stats() (hits, misses int64, sizeBytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.totalBytes
}

// Internal methods (must be called with lock held)

// addToFront adds an entry to the front of the list (most recently used).
func (c *ImageCache) addToFront(entry *imageEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

// moveToFront moves an existing entry to the front of the list.
func (c *ImageCache) moveToFront(entry *imageEntry) {
	// Remove from current position
	entry.prev.next = entry.next
	entry.next.prev = entry.prev

	// Add to front
	c.addToFront(entry)
}

// removeEntry removes an entry from both the list and the map.
func (c *ImageCache) removeEntry(entry *imageEntry) {
	// Remove from list
	entry.prev.next = entry.next
	entry.next.prev = entry.prev

	// Remove from map and byte accounting
	delete(c.items, entry.key)
	c.totalBytes -= int64(len(entry.data))
}

// evictOldest removes the least recently used entry.
// Returns false if the list is empty.
func (c *ImageCache) evictOldest() bool {
	oldest := c.tail.prev
	if oldest == c.head {
		return false
	}
	c.removeEntry(oldest)
	return true
}
