// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package main implements catalog-import, the CSV-to-catalog ingest tool.
//
// It converts scraped product exports into the JSON catalog the server loads
// at startup. Column headers are matched through alias tables (English and
// Korean), categories are guessed from garment keywords when the source has
// none, and rows without an id get an assigned auto_%06d one.
//
// By default new rows are merged over an existing catalog: records with a
// known id replace the old ones in place, unseen ids append in ingest order.
//
// Usage:
//
//	catalog-import -input products.csv
//	catalog-import -input crawl-1.csv -output data/catalog.json crawl-2.csv crawl-3.csv
//	catalog-import -input products.csv -merge=false   # replace instead of merge
//	catalog-import -input products.tsv -tags-delim ";"
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/vestiarium/internal/catalog"
	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/models"
)

func main() {
	input := flag.String("input", "", "CSV file to ingest (required; extra files may follow as arguments)")
	output := flag.String("output", "data/catalog.json", "catalog JSON file to write")
	tagsDelim := flag.String("tags-delim", ",", "delimiter between entries inside the tags column")
	merge := flag.Bool("merge", true, "merge over an existing output catalog instead of replacing it")
	flag.Parse()

	// Console logging; the ingest reader logs skipped rows through it.
	logging.Init(logging.Config{Level: "info", Format: "console"})

	inputs := flag.Args()
	if *input != "" {
		inputs = append([]string{*input}, inputs...)
	}
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one input CSV is required")
		flag.Usage()
		os.Exit(1)
	}

	start := time.Now()

	// One reader across all files keeps the auto-id sequence unique.
	reader := catalog.NewReader(*tagsDelim)
	var incoming []models.CatalogItem
	for _, path := range inputs {
		items, err := reader.ReadCSVFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logging.Info().Int("rows", len(items)).Str("path", path).Msg("Ingested CSV")
		incoming = append(incoming, items...)
	}

	existing, err := loadExisting(*output, *merge)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	items := catalog.MergeItems(existing, incoming)

	// Building a store validates the merged catalog (duplicate ids) and
	// yields the stats for the report.
	store, err := catalog.New(items)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid catalog: %v\n", err)
		os.Exit(1)
	}

	if err := writeCatalog(*output, items); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stats := store.Stats()
	fmt.Printf(`
=== Catalog Import Report ===
Input files:    %d
Rows ingested:  %d
Existing kept:  %d
Catalog total:  %d
Categories:     top=%d pants=%d shoes=%d accessories=%d
Price range:    %d - %d KRW (avg %d)
Output:         %s
Total time:     %s
=============================
`, len(inputs), len(incoming), len(existing), stats.TotalProducts,
		stats.Categories[models.CategoryTop], stats.Categories[models.CategoryPants],
		stats.Categories[models.CategoryShoes], stats.Categories[models.CategoryAccessories],
		stats.PriceRange.Min, stats.PriceRange.Max, stats.PriceRange.Average,
		*output, time.Since(start).Round(time.Millisecond))
}

// loadExisting reads the current output catalog for merging. A missing file
// is an empty catalog; any other failure aborts so a half-readable catalog is
// never silently replaced.
func loadExisting(path string, merge bool) ([]models.CatalogItem, error) {
	if !merge {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read existing catalog: %w", err)
	}
	var items []models.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse existing catalog %s: %w", path, err)
	}
	return items, nil
}

// writeCatalog writes the catalog as an indented JSON array, creating the
// output directory if needed.
func writeCatalog(path string, items []models.CatalogItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
