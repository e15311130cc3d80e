// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package catalog

import (
	"fmt"
	"math"
	"os"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/metrics"
	"github.com/tomtom215/vestiarium/internal/models"
)

// Store holds the product catalog in memory. It is built once by Load or New
// and never mutated afterwards, so every accessor is safe for concurrent use
// without synchronization.
//
// Item order is preserved from the source file. The recommendation scorer
// relies on that order for stable tie-breaking, so the store never reorders
// or deduplicates silently.
type Store struct {
	items []models.CatalogItem
	byID  map[string]int
	stats models.CatalogStats
}

// New builds a Store from the given items. Duplicate ids are rejected with an
// error naming the id and both record positions. Items with a nil tag slice
// are normalized to an empty one so responses always carry a JSON array.
func New(items []models.CatalogItem) (*Store, error) {
	s := &Store{
		items: make([]models.CatalogItem, len(items)),
		byID:  make(map[string]int, len(items)),
	}

	for i, item := range items {
		if prev, ok := s.byID[item.ID]; ok {
			return nil, fmt.Errorf("duplicate catalog id %q (records %d and %d)", item.ID, prev, i)
		}
		if item.Tags == nil {
			item.Tags = []string{}
		}
		s.byID[item.ID] = i
		s.items[i] = item
	}

	s.stats = computeStats(s.items)
	metrics.UpdateCatalogGauges(s.stats.Categories)

	return s, nil
}

// Load reads a catalog JSON file (an array of CatalogItem records) and builds
// a Store from it.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var items []models.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	s, err := New(items)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}

	logging.Info().
		Int("products", s.Len()).
		Str("path", path).
		Msg("Catalog loaded")

	return s, nil
}

// Items returns a copy of the catalog in load order. The slice is the
// caller's to reorder or truncate; the records themselves share tag backing
// arrays with the store and must be treated as read-only.
func (s *Store) Items() []models.CatalogItem {
	out := make([]models.CatalogItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int {
	return len(s.items)
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (models.CatalogItem, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.CatalogItem{}, false
	}
	return s.items[i], true
}

// Stats returns the aggregate stats computed when the store was built. The
// Categories map is copied on each call so callers cannot corrupt it.
func (s *Store) Stats() models.CatalogStats {
	out := s.stats
	out.Categories = make(map[string]int, len(s.stats.Categories))
	for k, v := range s.stats.Categories {
		out.Categories[k] = v
	}
	return out
}

// GroupCategory maps a recorded category string to the bucket used for
// grouping and stats. The four recognized categories map to themselves;
// everything else, including the empty string, groups under accessories.
// The string recorded on the item itself is left untouched.
func GroupCategory(category string) string {
	switch category {
	case models.CategoryTop, models.CategoryPants, models.CategoryShoes, models.CategoryAccessories:
		return category
	default:
		return models.CategoryAccessories
	}
}

func computeStats(items []models.CatalogItem) models.CatalogStats {
	stats := models.CatalogStats{
		TotalProducts: len(items),
		Categories:    make(map[string]int, len(models.Categories)),
	}
	if len(items) == 0 {
		return stats
	}

	minPrice := items[0].Price
	maxPrice := items[0].Price
	total := 0
	for _, item := range items {
		stats.Categories[GroupCategory(item.Category)]++
		total += item.Price
		if item.Price < minPrice {
			minPrice = item.Price
		}
		if item.Price > maxPrice {
			maxPrice = item.Price
		}
	}

	stats.PriceRange = models.PriceRange{
		Min:     minPrice,
		Max:     maxPrice,
		Average: int(math.Round(float64(total) / float64(len(items)))),
	}
	return stats
}
