// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

// Package catalog provides the in-memory product catalog backing the
// recommendation endpoints.
//
// The catalog is a flat JSON array of product records (data/catalog.json by
// default) loaded once at startup and immutable afterwards. There is no
// database: the whole dataset is a few thousand small records, and keeping
// it as an ordered slice gives the scorer stable tie-breaking and lock-free
// concurrent reads for free.
//
// # Store
//
// Build a Store with Load (from a JSON file) or New (from items already in
// hand, typically fixtures in tests):
//
//	store, err := catalog.Load(cfg.Catalog.Path)
//	if err != nil {
//	    logging.Warn().Err(err).Msg("Starting with empty catalog")
//	    store, _ = catalog.New(nil)
//	}
//
// Duplicate ids are rejected at build time with an error naming the id and
// both record positions. Aggregate stats (total, per-category counts, price
// range) are computed once during the build and served verbatim by
// GET /api/recommend/catalog.
//
// # Categories
//
// Four categories are recognized: top, pants, shoes, accessories. A record
// may carry any category string, but grouping and stats fold unrecognized
// values into accessories via GroupCategory. The recorded string stays on
// the item.
//
// # CSV Ingest
//
// Reader, GuessCategory, ParsePrice, and MergeItems support the
// cmd/catalog-import tool, which converts scraped CSV exports into the
// catalog JSON format:
//
//	r := catalog.NewReader(",")
//	items, err := r.ReadCSVFile("real_data/musinsa_man_top.csv")
//
// Column headers are matched case-insensitively against alias tables that
// cover English, Korean, and crawler-specific names. Rows without an id get
// one extracted from a product URL, or an assigned auto_%06d. Rows without
// a category get one guessed from garment keywords in the title and tags.
package catalog
