// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/vestiarium/internal/config"
	"github.com/tomtom215/vestiarium/internal/logging"
	"github.com/tomtom215/vestiarium/internal/metrics"
	"github.com/tomtom215/vestiarium/internal/models"
	"github.com/tomtom215/vestiarium/internal/vision"
)

// Candidate payload trimming, to keep the rerank call inside its token
// budget.
const (
	maxRerankCandidates = 20
	maxRerankTitleRunes = 120
	maxRerankTags       = 6
)

const rerankPrompt = "You are a fashion recommendation assistant. Given user's style analysis and candidate items per category, " +
	"select the best items for each category. Return ONLY JSON with keys top, pants, shoes, accessories, " +
	"each value a list of item id strings (length up to %d)."

const defaultRerankMaxTokens = 400

// LLMReranker asks the language model to pick the best candidate ids per
// category. Every failure path returns nil, which keeps the heuristic
// order; re-ranking can only ever refine a response, never break one.
type LLMReranker struct {
	client Completer
	cfg    config.RecommendConfig
}

// NewLLMReranker creates a reranker over the given completion client,
// typically the vision adapter.
func NewLLMReranker(client Completer, cfg config.RecommendConfig) *LLMReranker {
	return &LLMReranker{client: client, cfg: cfg}
}

// Name identifies the reranker in logs.
func (r *LLMReranker) Name() string {
	return "llm"
}

// Rerank implements Reranker.
func (r *LLMReranker) Rerank(ctx context.Context, analysis any, candidates *models.CategoryRecommendations, topK int) map[string][]string {
	if r.client == nil || !r.client.Available() {
		metrics.RecordRerank(metrics.OutcomeUnavailable)
		return nil
	}

	segments, err := r.buildSegments(analysis, candidates, topK)
	if err != nil {
		r.fail(err)
		return nil
	}

	raw, err := r.client.CompleteText(ctx, segments, r.maxTokens(), r.cfg.RerankTemperature)
	if err != nil {
		r.fail(err)
		return nil
	}

	selected, err := parseSelection(raw, topK)
	if err != nil {
		r.fail(err)
		return nil
	}

	metrics.RecordRerank(metrics.OutcomeSuccess)
	return selected
}

func (r *LLMReranker) fail(err error) {
	metrics.RecordRerank(metrics.OutcomeError)
	logging.Warn().
		Err(err).
		Str("reranker", r.Name()).
		Msg("Re-ranking failed, keeping heuristic order")
}

func (r *LLMReranker) maxTokens() int {
	if r.cfg.RerankMaxTokens > 0 {
		return r.cfg.RerankMaxTokens
	}
	return defaultRerankMaxTokens
}

// buildSegments assembles the user message: instruction, the raw analysis,
// then one candidate block per category in canonical order. Empty
// categories still get a block so the model sees the full key set.
func (r *LLMReranker) buildSegments(analysis any, candidates *models.CategoryRecommendations, topK int) ([]string, error) {
	if analysis == nil {
		analysis = struct{}{}
	}
	styleJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis: %w", err)
	}

	segments := []string{
		fmt.Sprintf(rerankPrompt, topK),
		"STYLE_ANALYSIS:\n" + string(styleJSON),
	}
	for _, category := range models.Categories {
		rows, err := json.Marshal(candidateRows(candidates.ByCategory(category)))
		if err != nil {
			return nil, fmt.Errorf("marshal %s candidates: %w", category, err)
		}
		segments = append(segments, "CANDIDATES_"+strings.ToUpper(category)+":\n"+string(rows))
	}

	return segments, nil
}

// candidateRow is the trimmed projection of a candidate sent to the model.
type candidateRow struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Price int      `json:"price"`
}

func candidateRows(items []models.RecommendationItem) []candidateRow {
	n := min(len(items), maxRerankCandidates)
	rows := make([]candidateRow, 0, n)
	for _, item := range items[:n] {
		tags := item.Tags
		if len(tags) > maxRerankTags {
			tags = tags[:maxRerankTags]
		}
		rows = append(rows, candidateRow{
			ID:    item.ID,
			Title: truncateRunes(item.Title, maxRerankTitleRunes),
			Tags:  tags,
			Price: item.Price,
		})
	}
	return rows
}

// parseSelection extracts the id lists from the model reply, tolerating
// fenced output and numeric ids, and caps each list at topK.
func parseSelection(raw string, topK int) (map[string][]string, error) {
	blob, ok := vision.ExtractJSON(raw)
	if !ok {
		return nil, errors.New("no JSON object in rerank response")
	}

	var sel struct {
		Top         []candidateID `json:"top"`
		Pants       []candidateID `json:"pants"`
		Shoes       []candidateID `json:"shoes"`
		Accessories []candidateID `json:"accessories"`
	}
	if err := json.Unmarshal([]byte(blob), &sel); err != nil {
		return nil, fmt.Errorf("parse rerank selection: %w", err)
	}

	return map[string][]string{
		models.CategoryTop:         idStrings(sel.Top, topK),
		models.CategoryPants:       idStrings(sel.Pants, topK),
		models.CategoryShoes:       idStrings(sel.Shoes, topK),
		models.CategoryAccessories: idStrings(sel.Accessories, topK),
	}, nil
}

// candidateID tolerates the model returning ids as JSON numbers: the raw
// numeric token is taken verbatim as the id string.
type candidateID string

func (c *candidateID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = candidateID(s)
		return nil
	}

	token := strings.TrimSpace(string(b))
	if len(token) > 0 && (token[0] == '-' || (token[0] >= '0' && token[0] <= '9')) {
		*c = candidateID(token)
		return nil
	}
	return fmt.Errorf("candidate id must be a string or number, got %s", token)
}

func idStrings(ids []candidateID, topK int) []string {
	if len(ids) > topK {
		ids = ids[:topK]
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
