// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/models"
	"github.com/tomtom215/vestiarium/internal/textmatch"
)

// Column aliases seen across scraped product exports. Header cells are
// normalized by normKey before lookup, so only lowercase underscore forms
// appear here. The *_u / *_n / *_p / *_b names come from Musinsa crawler
// dumps.
var (
	idColumns         = []string{"id", "product_id", "상품코드", "상품id", "상품번호"}
	titleColumns      = []string{"title", "name", "상품명", "제품명", "product_n"}
	priceColumns      = []string{"price", "가격", "판매가", "product_p"}
	tagsColumns       = []string{"tags", "태그", "키워드"}
	categoryColumns   = []string{"category", "카테고리", "분류"}
	brandColumns      = []string{"brand", "브랜드", "product_b"}
	imageColumns      = []string{"imageurl", "image_url", "image", "img_url", "이미지url", "이미지", "대표이미지", "product_img_u"}
	productURLColumns = []string{"producturl", "product_url", "product_u", "상품url", "링크"}
)

// Garment keyword lists for category guessing, English plus the Korean terms
// that appear in scraped titles. Matching is case-insensitive substring
// containment, so "t-shirt" also catches "oversized t-shirts".
var (
	topKeywords = []string{
		"hoodie", "shirt", "t-shirt", "sweatshirt", "sweater", "cardigan", "knit", "top",
		"후드", "셔츠", "티셔츠", "맨투맨", "니트", "가디건", "블라우스",
	}
	pantsKeywords = []string{
		"jeans", "slacks", "pants", "denim", "skirt",
		"바지", "슬랙스", "데님", "청바지", "진", "스커트",
	}
	shoesKeywords = []string{
		"shoes", "sneakers", "boots", "loafers",
		"신발", "스니커즈", "운동화", "부츠", "로퍼",
	}

	topMatcher   = textmatch.NewMatcher(topKeywords)
	pantsMatcher = textmatch.NewMatcher(pantsKeywords)
	shoesMatcher = textmatch.NewMatcher(shoesKeywords)
)

var (
	// productIDPattern extracts numeric product ids embedded in URLs.
	// Five digits is the shortest run observed in real product pages;
	// anything shorter is usually an image size or a CDN shard number.
	productIDPattern = regexp.MustCompile(`\d{5,}`)

	// nonPriceChars strips currency symbols, thousands separators, and
	// unit suffixes such as "원" before numeric parsing.
	nonPriceChars = regexp.MustCompile(`[^0-9.]`)

	// titleTokenPattern splits titles into alphanumeric and Hangul runs.
	titleTokenPattern = regexp.MustCompile(`[^A-Za-z0-9가-힣]+`)
)

// maxExtraTags caps how many derived tags (brand plus title tokens) a single
// row contributes on top of its explicit tags column.
const maxExtraTags = 6

// Reader converts raw CSV rows into catalog items. It carries the running
// auto-id counter, so ids assigned to rows without one stay unique even when
// several files are ingested into the same catalog.
//
// Reader is not safe for concurrent use; ingest one file at a time.
type Reader struct {
	tagsDelim string
	autoSeq   int
}

// NewReader creates a CSV reader. tagsDelim separates entries inside the
// tags column; pass "" for the default comma.
func NewReader(tagsDelim string) *Reader {
	if tagsDelim == "" {
		tagsDelim = ","
	}
	return &Reader{tagsDelim: tagsDelim}
}

// ReadCSVFile ingests a single CSV file.
func (r *Reader) ReadCSVFile(path string) ([]models.CatalogItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("path", path).Msg("Error closing CSV file")
		}
	}()

	items, err := r.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return items, nil
}

// ReadCSV ingests CSV data from src. The first row is treated as a header;
// cells are matched to catalog fields through the column alias tables, so
// mixed-case, snake/camel, and Korean headers all work. Rows that fail to
// parse are logged and skipped rather than aborting the whole file.
func (r *Reader) ReadCSV(src io.Reader) ([]models.CatalogItem, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty CSV: missing header row")
		}
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = normKey(h)
	}

	var items []models.CatalogItem
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logging.Warn().Err(err).Int("line", line).Msg("Skipping malformed CSV row")
			continue
		}

		row := make(map[string]string, len(keys))
		for i, v := range record {
			if i < len(keys) && keys[i] != "" {
				row[keys[i]] = v
			}
		}

		r.autoSeq++
		items = append(items, r.mapRow(row, r.autoSeq))
	}

	return items, nil
}

// mapRow builds one catalog item from a header-normalized row. idx feeds the
// auto_%06d fallback id.
func (r *Reader) mapRow(row map[string]string, idx int) models.CatalogItem {
	pick := func(keys []string) string {
		for _, k := range keys {
			if v, ok := row[k]; ok && v != "" {
				return v
			}
		}
		return ""
	}

	imageURL := pick(imageColumns)
	productURL := pick(productURLColumns)

	// Id preference: explicit column, then a numeric run in the product
	// or image URL, then an assigned auto id.
	id := pick(idColumns)
	if id == "" {
		id = productIDPattern.FindString(productURL)
	}
	if id == "" {
		id = productIDPattern.FindString(imageURL)
	}
	if id == "" {
		id = fmt.Sprintf("auto_%06d", idx)
	}

	title := pick(titleColumns)
	baseTags := splitTags(pick(tagsColumns), r.tagsDelim)
	brand := pick(brandColumns)

	category := pick(categoryColumns)
	if category == "" {
		category = GuessCategory(title, baseTags)
	}

	return models.CatalogItem{
		ID:         id,
		Title:      title,
		Price:      ParsePrice(pick(priceColumns)),
		Tags:       buildTags(baseTags, brand, title),
		Category:   category,
		ImageURL:   imageURL,
		ProductURL: productURL,
		Brand:      brand,
	}
}

// GuessCategory infers a category from the title and tags when the source
// row has none. Lists are checked top, then pants, then shoes; anything
// unmatched lands in accessories.
func GuessCategory(title string, tags []string) string {
	text := title
	if len(tags) > 0 {
		text += " " + strings.Join(tags, " ")
	}

	switch {
	case topMatcher.Contains(text):
		return models.CategoryTop
	case pantsMatcher.Contains(text):
		return models.CategoryPants
	case shoesMatcher.Contains(text):
		return models.CategoryShoes
	default:
		return models.CategoryAccessories
	}
}

// ParsePrice extracts a whole-KRW price from a raw cell. Currency symbols,
// separators, and suffixes are stripped; fractions truncate. Unparseable
// values come back as 0 rather than failing the row.
func ParsePrice(v string) int {
	s := nonPriceChars.ReplaceAllString(v, "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// MergeItems merges newly ingested items over an existing catalog. Existing
// records keep their position; an incoming record with a known id replaces
// the old one in place, and unseen ids append in ingest order.
func MergeItems(existing, incoming []models.CatalogItem) []models.CatalogItem {
	index := make(map[string]int, len(existing))
	out := make([]models.CatalogItem, 0, len(existing)+len(incoming))

	for _, it := range existing {
		if i, ok := index[it.ID]; ok {
			out[i] = it
			continue
		}
		index[it.ID] = len(out)
		out = append(out, it)
	}
	for _, it := range incoming {
		if i, ok := index[it.ID]; ok {
			out[i] = it
			continue
		}
		index[it.ID] = len(out)
		out = append(out, it)
	}

	return out
}

// normKey normalizes a header cell: BOM stripped, trimmed, lowercased, and
// hyphens folded to underscores.
func normKey(k string) string {
	k = strings.ReplaceAll(k, "﻿", "")
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.ReplaceAll(k, "-", "_")
}

// splitTags splits a tags cell on delim, trimming entries and dropping
// empties.
func splitTags(text, delim string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(text, delim) {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// buildTags combines the explicit tags with up to maxExtraTags derived ones:
// the brand name, then significant title tokens (three runes or longer,
// lowercased). The result is deduplicated and sorted.
func buildTags(base []string, brand, title string) []string {
	extra := make([]string, 0, maxExtraTags)
	if brand != "" {
		extra = append(extra, brand)
	}
	for _, tok := range titleTokenPattern.Split(title, -1) {
		if len(extra) >= maxExtraTags {
			break
		}
		if utf8.RuneCountInString(tok) >= 3 {
			extra = append(extra, strings.ToLower(tok))
		}
	}

	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, t := range base {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range extra {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
