// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/vestiarium/internal/catalog"
	"github.com/tomtom215/vestiarium/internal/models"
	"github.com/tomtom215/vestiarium/internal/textmatch"
)

// bucketOrder is the precedence for tag bucketing: an item whose tags span
// several garment sets lands in the first matching bucket.
var bucketOrder = []string{models.CategoryTop, models.CategoryPants, models.CategoryShoes}

// bucketTags maps each garment bucket to the tags that place an item in it.
// Items with none of these tags and a positive score go to accessories.
var bucketTags = map[string][]string{
	models.CategoryTop:   {"shirt", "top", "hoodie", "t-shirt"},
	models.CategoryPants: {"pants", "jeans", "slacks"},
	models.CategoryShoes: {"shoes", "sneakers"},
}

// Scorer scores catalog items against analysis keywords. It is a pure
// function of the injected store: identical keywords always produce
// identical ordered output, with ties broken by catalog position.
type Scorer struct {
	store     *catalog.Store
	threshold float64
}

// NewScorer creates a scorer over the given catalog. Items must score
// strictly above threshold to surface; zero keeps every positive match.
func NewScorer(store *catalog.Store, threshold float64) *Scorer {
	return &Scorer{store: store, threshold: threshold}
}

// scoredItem pairs a catalog item with its cumulative keyword score and
// original catalog position for stable tie-breaking.
type scoredItem struct {
	item  models.CatalogItem
	score float64
	index int
}

// FindSimilar scores the catalog against the keywords and groups the
// results by garment bucket, each list sorted by descending score and
// truncated to the request's per-category limit.
//
// An empty keyword list yields all-empty recommendations without error.
func (s *Scorer) FindSimilar(keywords []string, opts *models.RecommendationOptions) models.CategoryRecommendations {
	return s.findSimilar(keywords, opts, opts.Limit())
}

// findSimilar is FindSimilar with an explicit per-category cap, used by the
// engine to gather a wider candidate pool for re-ranking.
func (s *Scorer) findSimilar(keywords []string, opts *models.RecommendationOptions, perCategory int) models.CategoryRecommendations {
	recs := emptyRecommendations()

	buckets := make(map[string][]scoredItem, len(models.Categories))
	for _, sc := range s.scoreCatalog(keywords, opts) {
		bucket := bucketFor(sc.item.Tags)
		buckets[bucket] = append(buckets[bucket], sc)
	}

	includeScore := opts != nil && opts.IncludeScore
	for _, category := range models.Categories {
		list := buckets[category]
		sortByScore(list)
		if len(list) > perCategory {
			list = list[:perCategory]
		}
		recs.SetCategory(category, projectItems(list, includeScore))
	}

	return recs
}

// Score scores every catalog item against the keywords and returns the
// positive matches in descending score order without bucketing or
// truncation. Scores are always included.
func (s *Scorer) Score(keywords []string) []models.RecommendationItem {
	scored := s.scoreCatalog(keywords, nil)
	sortByScore(scored)
	return projectItems(scored, true)
}

// scoreCatalog runs the filter and scoring pass over the whole catalog,
// returning survivors in catalog order.
func (s *Scorer) scoreCatalog(keywords []string, opts *models.RecommendationOptions) []scoredItem {
	kws := normalizeKeywords(keywords)
	if len(kws) == 0 {
		return nil
	}

	matcher := buildMatcher(kws)
	excluded := lowerSet(excludeTags(opts))

	var scored []scoredItem
	for i, item := range s.store.Items() {
		if !priceAllowed(item.Price, opts) {
			continue
		}
		if hasExcludedTag(item.Tags, excluded) {
			continue
		}

		hits := matcher.MatchedSet(itemText(item))
		score := scoreKeywords(kws, hits)
		if score <= s.threshold {
			continue
		}

		scored = append(scored, scoredItem{item: item, score: score, index: i})
	}

	return scored
}

// scoreKeywords sums the per-keyword contributions: 1.0 when the full
// keyword occurs in the item text, else 0.5 when any whitespace token of
// the keyword occurs.
func scoreKeywords(keywords []string, hits map[string]bool) float64 {
	var score float64
	for _, kw := range keywords {
		if hits[kw] {
			score += 1.0
			continue
		}
		for _, tok := range strings.Fields(kw) {
			if hits[tok] {
				score += 0.5
				break
			}
		}
	}
	return score
}

// buildMatcher builds one automaton over the keywords plus the individual
// tokens of multi-token keywords, so a single pass over the item text
// answers both the full-match and token-match questions.
func buildMatcher(keywords []string) *textmatch.Matcher {
	patterns := make([]string, 0, len(keywords)*2)
	patterns = append(patterns, keywords...)
	for _, kw := range keywords {
		if toks := strings.Fields(kw); len(toks) > 1 {
			patterns = append(patterns, toks...)
		}
	}
	return textmatch.NewMatcher(patterns)
}

// itemText is the searchable text of one catalog item: title plus tags.
// Case folding happens inside the matcher.
func itemText(item models.CatalogItem) string {
	return item.Title + " " + strings.Join(item.Tags, " ")
}

// bucketFor returns the garment bucket for an item based on its tags.
func bucketFor(tags []string) string {
	have := make(map[string]bool, len(tags))
	for _, t := range tags {
		have[strings.ToLower(t)] = true
	}
	for _, category := range bucketOrder {
		for _, tag := range bucketTags[category] {
			if have[tag] {
				return category
			}
		}
	}
	return models.CategoryAccessories
}

// sortByScore orders by descending score with catalog-order tie-breaks.
func sortByScore(items []scoredItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].index < items[j].index
	})
}

// projectItems converts scored catalog records into response items.
func projectItems(scored []scoredItem, includeScore bool) []models.RecommendationItem {
	out := make([]models.RecommendationItem, len(scored))
	for i, sc := range scored {
		out[i] = models.RecommendationItem{
			ID:         sc.item.ID,
			Title:      sc.item.Title,
			Price:      sc.item.Price,
			Tags:       sc.item.Tags,
			Category:   sc.item.Category,
			ImageURL:   sc.item.ImageURL,
			ProductURL: sc.item.ProductURL,
		}
		if includeScore {
			score := sc.score
			out[i].Score = &score
		}
	}
	return out
}

// normalizeKeywords trims, lowercases, and drops empty keywords.
// Duplicates are kept: a keyword the analysis repeats counts twice,
// matching how repeated facets emphasize an attribute.
func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		out = append(out, kw)
	}
	return out
}

// priceAllowed applies the inclusive price bounds, if any.
func priceAllowed(price int, opts *models.RecommendationOptions) bool {
	if opts == nil {
		return true
	}
	if opts.MinPrice != nil && price < *opts.MinPrice {
		return false
	}
	if opts.MaxPrice != nil && price > *opts.MaxPrice {
		return false
	}
	return true
}

func excludeTags(opts *models.RecommendationOptions) []string {
	if opts == nil {
		return nil
	}
	return opts.ExcludeTags
}

// hasExcludedTag reports whether any item tag is in the exclusion set.
// One hit drops the item entirely.
func hasExcludedTag(tags []string, excluded map[string]bool) bool {
	if len(excluded) == 0 {
		return false
	}
	for _, t := range tags {
		if excluded[strings.ToLower(t)] {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

// emptyRecommendations returns recommendations with all four category
// slices allocated, so responses always carry JSON arrays, never null.
func emptyRecommendations() models.CategoryRecommendations {
	return models.CategoryRecommendations{
		Top:         []models.RecommendationItem{},
		Pants:       []models.RecommendationItem{},
		Shoes:       []models.RecommendationItem{},
		Accessories: []models.RecommendationItem{},
	}
}
