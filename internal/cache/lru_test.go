// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package cache

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"
)

func imageData(size int, fill byte) []byte {
	return bytes.Repeat([]byte{fill}, size)
}

func TestImageCache_BasicOperations(t *testing.T) {
	cache := NewImageCache(1<<20, time.Minute)

	cache.Add("https://cdn.example.com/a.jpg", imageData(100, 'a'), "image/jpeg")
	cache.Add("https://cdn.example.com/b.png", imageData(200, 'b'), "image/png")

	data, mimeType, found := cache.Get("https://cdn.example.com/a.jpg")
	if !found {
		t.Fatal("Expected to find cached image a.jpg")
	}
	if len(data) != 100 || data[0] != 'a' {
		t.Errorf("Unexpected data for a.jpg: len=%d", len(data))
	}
	if mimeType != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %s", mimeType)
	}

	if _, _, found := cache.Get("https://cdn.example.com/missing.jpg"); found {
		t.Error("Expected miss for uncached URL")
	}

	if cache.Len() != 2 {
		t.Errorf("Expected len 2, got %d", cache.Len())
	}
	if cache.SizeBytes() != 300 {
		t.Errorf("Expected 300 bytes cached, got %d", cache.SizeBytes())
	}
}

func TestImageCache_ByteBudgetEviction(t *testing.T) {
	// Budget fits three 1KB images
	cache := NewImageCache(3*1024, time.Minute)

	cache.Add("a", imageData(600, 'a'), "image/jpeg")
	cache.Add("b", imageData(600, 'b'), "image/jpeg")
	cache.Add("c", imageData(600, 'c'), "image/jpeg")

	// Access 'a' to make it most recently used
	cache.Get("a")

	// Push the total over budget; 'b' is now least recently used
	cache.Add("d", imageData(700, 'd'), "image/jpeg")
	cache.Add("e", imageData(700, 'e'), "image/jpeg")

	if _, _, found := cache.Get("b"); found {
		t.Error("Expected 'b' to be evicted first")
	}
	if _, _, found := cache.Get("a"); !found {
		t.Error("Expected recently used 'a' to survive")
	}
	if cache.SizeBytes() > 3*1024 {
		t.Errorf("Expected byte usage within budget, got %d", cache.SizeBytes())
	}
}

func TestImageCache_OversizedEntryNotCached(t *testing.T) {
	cache := NewImageCache(1024, time.Minute)

	// Larger than a quarter of the budget: skipped entirely
	cache.Add("huge", imageData(512, 'h'), "image/jpeg")

	if cache.Len() != 0 {
		t.Error("Expected oversized image to be skipped")
	}

	// At the quarter boundary: cached
	cache.Add("ok", imageData(256, 'o'), "image/jpeg")
	if cache.Len() != 1 {
		t.Error("Expected quarter-budget image to be cached")
	}
}

func TestImageCache_TTLExpiration(t *testing.T) {
	cache := NewImageCache(1<<20, 50*time.Millisecond)

	cache.Add("a", imageData(100, 'a'), "image/jpeg")

	// Should be found immediately
	if _, _, found := cache.Get("a"); !found {
		t.Error("Expected to find image immediately")
	}

	// Wait for TTL to expire
	time.Sleep(60 * time.Millisecond)

	// Should not be found after expiration
	if _, _, found := cache.Get("a"); found {
		t.Error("Expected image to be expired")
	}
	if cache.SizeBytes() != 0 {
		t.Errorf("Expected byte accounting to drop on expiry, got %d", cache.SizeBytes())
	}
}

func TestImageCache_UpdateExisting(t *testing.T) {
	cache := NewImageCache(1<<20, time.Minute)

	cache.Add("a", imageData(100, 'x'), "image/jpeg")
	cache.Add("a", imageData(300, 'y'), "image/webp")

	data, mimeType, found := cache.Get("a")
	if !found {
		t.Fatal("Expected updated image to be present")
	}
	if len(data) != 300 || data[0] != 'y' {
		t.Error("Expected updated data")
	}
	if mimeType != "image/webp" {
		t.Errorf("Expected updated MIME type, got %s", mimeType)
	}

	if cache.Len() != 1 {
		t.Errorf("Expected single entry after update, got %d", cache.Len())
	}
	if cache.SizeBytes() != 300 {
		t.Errorf("Expected byte accounting to follow update, got %d", cache.SizeBytes())
	}
}

func TestImageCache_Remove(t *testing.T) {
	cache := NewImageCache(1<<20, time.Minute)

	cache.Add("a", imageData(100, 'a'), "image/jpeg")

	if !cache.Remove("a") {
		t.Error("Expected Remove to report success")
	}
	if cache.Remove("a") {
		t.Error("Expected Remove of missing key to report false")
	}
	if _, _, found := cache.Get("a"); found {
		t.Error("Expected removed image to be gone")
	}
	if cache.SizeBytes() != 0 {
		t.Errorf("Expected 0 bytes after removal, got %d", cache.SizeBytes())
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache(1<<20, time.Minute)

	cache.Add("a", imageData(100, 'a'), "image/jpeg")
	cache.Add("b", imageData(100, 'b'), "image/png")

	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after clear, got %d entries", cache.Len())
	}
	if cache.SizeBytes() != 0 {
		t.Errorf("Expected 0 bytes after clear, got %d", cache.SizeBytes())
	}
}

func TestImageCache_CleanupExpired(t *testing.T) {
	cache := NewImageCache(1<<20, 50*time.Millisecond)

	cache.Add("a", imageData(100, 'a'), "image/jpeg")
	cache.Add("b", imageData(100, 'b'), "image/jpeg")

	time.Sleep(60 * time.Millisecond)

	removed := cache.CleanupExpired()
	if removed != 2 {
		t.Errorf("Expected 2 expired entries removed, got %d", removed)
	}
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after cleanup, got %d", cache.Len())
	}
}

func TestImageCache_Stats(t *testing.T) {
	cache := NewImageCache(1<<20, time.Minute)

	cache.Add("a", imageData(100, 'a'), "image/jpeg")
	cache.Get("a")       // hit
	cache.Get("missing") // miss
	cache.Get("a")       // hit

	hits, misses, sizeBytes := cache.Stats()
	if hits != 2 {
		t.Errorf("Expected 2 hits, got %d", hits)
	}
	if misses != 1 {
		t.Errorf("Expected 1 miss, got %d", misses)
	}
	if sizeBytes != 100 {
		t.Errorf("Expected 100 bytes, got %d", sizeBytes)
	}
}

func TestImageCache_Concurrent(t *testing.T) {
	cache := NewImageCache(1<<20, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				url := fmt.Sprintf("https://cdn.example.com/%d-%d.jpg", id, j%5)
				cache.Add(url, imageData(64, byte('a'+id)), "image/jpeg")
				cache.Get(url)
			}
		}(i)
	}
	wg.Wait()

	hits, misses, _ := cache.Stats()
	if hits == 0 && misses == 0 {
		t.Error("Expected cache activity from concurrent operations")
	}
}

func BenchmarkImageCache_Add(b *testing.B) {
	cache := NewImageCache(64<<20, time.Minute)
	data := imageData(32*1024, 'x')

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Add(fmt.Sprintf("url-%d", i%100), data, "image/jpeg")
	}
}

func BenchmarkImageCache_Get(b *testing.B) {
	cache := NewImageCache(64<<20, time.Minute)
	data := imageData(32*1024, 'x')
	for i := 0; i < 100; i++ {
		cache.Add(fmt.Sprintf("url-%d", i), data, "image/jpeg")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(fmt.Sprintf("url-%d", i%100))
	}
}
