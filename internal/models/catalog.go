// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package models

// Recognized catalog categories. Items whose category is not one of these
// are grouped under accessories; the recorded category string is preserved.
const (
	CategoryTop         = "top"
	CategoryPants       = "pants"
	CategoryShoes       = "shoes"
	CategoryAccessories = "accessories"
)

// Categories lists the recognized categories in canonical response order.
var Categories = []string{CategoryTop, CategoryPants, CategoryShoes, CategoryAccessories}

// CatalogItem is one product record from the catalog file. The catalog is
// loaded once at startup and immutable afterwards, so items are safe for
// unsynchronized concurrent reads.
//
// Example record (data/catalog.json):
//
//	{
//	  "id": "2071661",
//	  "title": "オーバーサイズ hoodie black",
//	  "price": 39000,
//	  "imageUrl": "https://image.msscdn.net/images/goods_img/2071661.jpg",
//	  "tags": ["black", "casual", "hoodie", "oversized"],
//	  "category": "top"
//	}
type CatalogItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Price        int      `json:"price"`
	Tags         []string `json:"tags"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	ProductURL   string   `json:"productUrl,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Availability *bool    `json:"availability,omitempty"`
}

// RecommendationItem is a CatalogItem projected into a recommendation
// response with a relevance score attached. Score is omitted from the JSON
// body unless the request asked for it.
type RecommendationItem struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Price      int      `json:"price"`
	Tags       []string `json:"tags"`
	Category   string   `json:"category"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	ProductURL string   `json:"productUrl,omitempty"`
	Score      *float64 `json:"score,omitempty"`
}

// CategoryRecommendations groups scored items by catalog category. Every
// slice is ordered by descending score with ties broken by original catalog
// order, and truncated to the request's maxPerCategory.
type CategoryRecommendations struct {
	Top         []RecommendationItem `json:"top"`
	Pants       []RecommendationItem `json:"pants"`
	Shoes       []RecommendationItem `json:"shoes"`
	Accessories []RecommendationItem `json:"accessories"`
}

// ByCategory returns the slice for a recognized category name, or nil.
func (c *CategoryRecommendations) ByCategory(category string) []RecommendationItem {
	switch category {
	case CategoryTop:
		return c.Top
	case CategoryPants:
		return c.Pants
	case CategoryShoes:
		return c.Shoes
	case CategoryAccessories:
		return c.Accessories
	default:
		return nil
	}
}

// SetCategory replaces the slice for a recognized category name.
func (c *CategoryRecommendations) SetCategory(category string, items []RecommendationItem) {
	switch category {
	case CategoryTop:
		c.Top = items
	case CategoryPants:
		c.Pants = items
	case CategoryShoes:
		c.Shoes = items
	case CategoryAccessories:
		c.Accessories = items
	}
}

// PriceRange summarizes catalog prices in whole KRW.
type PriceRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Average int `json:"average"`
}

// CatalogStats is the data payload of GET /api/recommend/catalog: aggregate
// counts computed once at catalog load time. The route wraps it in
// APIResponse so cache metadata travels with it.
//
// Example:
//
//	{
//	  "totalProducts": 120,
//	  "categories": {"top": 48, "pants": 36, "shoes": 24, "accessories": 12},
//	  "priceRange": {"min": 9900, "max": 189000, "average": 42350}
//	}
type CatalogStats struct {
	TotalProducts int            `json:"totalProducts"`
	Categories    map[string]int `json:"categories"`
	PriceRange    PriceRange     `json:"priceRange"`
}
