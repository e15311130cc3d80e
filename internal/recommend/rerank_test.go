// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/vestiarium/internal/config"
	"github.com/tomtom215/vestiarium/internal/models"
)

// mockCompleter is a canned text-completion client.
type mockCompleter struct {
	response  string
	err       error
	available bool

	calls        int
	gotSegments  []string
	gotMaxTokens int
	gotTemp      float64
}

func (m *mockCompleter) CompleteText(_ context.Context, segments []string, maxTokens int, temperature float64) (string, error) {
	m.calls++
	m.gotSegments = segments
	m.gotMaxTokens = maxTokens
	m.gotTemp = temperature
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockCompleter) Available() bool { return m.available }

func rerankCandidates() models.CategoryRecommendations {
	return models.CategoryRecommendations{
		Top: []models.RecommendationItem{
			{ID: "1", Title: "Oversized Black Hoodie", Price: 39000, Tags: []string{"black", "hoodie"}},
			{ID: "2", Title: "Classic White T-Shirt", Price: 15000, Tags: []string{"white", "t-shirt"}},
		},
		Pants: []models.RecommendationItem{
			{ID: "3", Title: "Slim Fit Blue Jeans", Price: 49000, Tags: []string{"blue", "jeans"}},
		},
		Shoes:       []models.RecommendationItem{},
		Accessories: []models.RecommendationItem{},
	}
}

func TestLLMReranker_Success(t *testing.T) {
	completer := &mockCompleter{
		available: true,
		response:  `{"top": ["2", "1"], "pants": ["3"], "shoes": [], "accessories": []}`,
	}
	reranker := NewLLMReranker(completer, config.RecommendConfig{RerankTemperature: 0.2})

	candidates := rerankCandidates()
	selected := reranker.Rerank(context.Background(), nil, &candidates, 3)
	if selected == nil {
		t.Fatal("Rerank() = nil, want selection")
	}

	want := map[string][]string{
		models.CategoryTop:         {"2", "1"},
		models.CategoryPants:       {"3"},
		models.CategoryShoes:       {},
		models.CategoryAccessories: {},
	}
	if !reflect.DeepEqual(selected, want) {
		t.Errorf("Rerank() = %v, want %v", selected, want)
	}

	if completer.gotMaxTokens != defaultRerankMaxTokens {
		t.Errorf("maxTokens = %d, want default %d", completer.gotMaxTokens, defaultRerankMaxTokens)
	}
	if completer.gotTemp != 0.2 {
		t.Errorf("temperature = %v, want 0.2", completer.gotTemp)
	}
}

func TestLLMReranker_SegmentLayout(t *testing.T) {
	completer := &mockCompleter{available: true, response: `{"top": ["1"]}`}
	reranker := NewLLMReranker(completer, config.RecommendConfig{})

	analysis := &models.StyleAnalysis{DetectedStyle: []string{"casual"}}
	candidates := rerankCandidates()
	if selected := reranker.Rerank(context.Background(), analysis, &candidates, 3); selected == nil {
		t.Fatal("Rerank() = nil, want selection")
	}

	segments := completer.gotSegments
	if len(segments) != 6 {
		t.Fatalf("segments = %d, want 6 (prompt, analysis, four categories)", len(segments))
	}

	if !strings.Contains(segments[0], "fashion recommendation assistant") {
		t.Errorf("prompt = %q, missing instruction", segments[0])
	}
	if !strings.Contains(segments[0], "up to 3") {
		t.Errorf("prompt = %q, missing the id budget", segments[0])
	}

	if !strings.HasPrefix(segments[1], "STYLE_ANALYSIS:\n") {
		t.Errorf("segment 1 = %q, want STYLE_ANALYSIS block", segments[1])
	}
	if !strings.Contains(segments[1], `"detected_style":["casual"]`) {
		t.Errorf("analysis block %q missing the marshaled analysis", segments[1])
	}

	prefixes := []string{"CANDIDATES_TOP:\n", "CANDIDATES_PANTS:\n", "CANDIDATES_SHOES:\n", "CANDIDATES_ACCESSORIES:\n"}
	for i, prefix := range prefixes {
		if !strings.HasPrefix(segments[2+i], prefix) {
			t.Errorf("segment %d = %q, want prefix %q", 2+i, segments[2+i], prefix)
		}
	}

	if !strings.Contains(segments[2], `"id":"1"`) || !strings.Contains(segments[2], `"price":39000`) {
		t.Errorf("top block %q missing candidate fields", segments[2])
	}

	// Empty categories still serialize, so the model sees every key.
	if got := strings.TrimPrefix(segments[4], "CANDIDATES_SHOES:\n"); got != "[]" {
		t.Errorf("empty shoes block = %q, want []", got)
	}
}

func TestLLMReranker_NilAnalysisSerializesAsObject(t *testing.T) {
	completer := &mockCompleter{available: true, response: `{"top": ["1"]}`}
	reranker := NewLLMReranker(completer, config.RecommendConfig{})

	candidates := rerankCandidates()
	if selected := reranker.Rerank(context.Background(), nil, &candidates, 3); selected == nil {
		t.Fatal("Rerank() = nil, want selection")
	}

	if got := completer.gotSegments[1]; got != "STYLE_ANALYSIS:\n{}" {
		t.Errorf("analysis block = %q, want empty object, not null", got)
	}
}

func TestLLMReranker_FencedResponse(t *testing.T) {
	completer := &mockCompleter{
		available: true,
		response:  "```json\n{\"top\": [\"2\"], \"pants\": [], \"shoes\": [], \"accessories\": []}\n```",
	}
	reranker := NewLLMReranker(completer, config.RecommendConfig{})

	candidates := rerankCandidates()
	selected := reranker.Rerank(context.Background(), nil, &candidates, 3)
	if selected == nil {
		t.Fatal("Rerank() = nil, want selection from fenced reply")
	}
	if got := selected[models.CategoryTop]; !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("top = %v, want [2]", got)
	}
}

func TestLLMReranker_NumericIDs(t *testing.T) {
	completer := &mockCompleter{available: true, response: `{"top": [101, 7]}`}
	reranker := NewLLMReranker(completer, config.RecommendConfig{})

	candidates := rerankCandidates()
	selected := reranker.Rerank(context.Background(), nil, &candidates, 3)
	if selected == nil {
		t.Fatal("Rerank() = nil, want selection")
	}
	if got := selected[models.CategoryTop]; !reflect.DeepEqual(got, []string{"101", "7"}) {
		t.Errorf("top = %v, want numeric ids as strings [101 7]", got)
	}
}

func TestLLMReranker_MissingCategoriesComeBackEmpty(t *testing.T) {
	completer := &mockCompleter{available: true, response: `{"top": ["1"]}`}
	reranker := NewLLMReranker(completer, config.RecommendConfig{})

	candidates := rerankCandidates()
	selected := reranker.Rerank(context.Background(), nil, &candidates, 3)
	if selected == nil {
		t.Fatal("Rerank() = nil, want selection")
	}

	for _, category := range models.Categories {
		if _, ok := selected[category]; !ok {
			t.Errorf("selection missing category %q", category)
		}
	}
	if got := selected[models.CategoryPants]; got == nil || len(got) != 0 {
		t.Errorf("pants = %v, want empty non-nil", got)
	}
}

func TestLLMReranker_CapsSelectionAtTopK(t *testing.T) {
	completer := &mockCompleter{available: true, response: `{"top": ["1", "2", "3", "4"]}`}
	reranker := NewLLMReranker(completer, config.RecommendConfig{})

	candidates := rerankCandidates()
	selected := reranker.Rerank(context.Background(), nil, &candidates, 2)
	if selected == nil {
		t.Fatal("Rerank() = nil, want selection")
	}
	if got := selected[models.CategoryTop]; !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("top = %v, want first 2 ids", got)
	}
}

func TestLLMReranker_ConfiguredCallParameters(t *testing.T) {
	completer := &mockCompleter{available: true, response: `{"top": []}`}
	reranker := NewLLMReranker(completer, config.RecommendConfig{
		RerankMaxTokens:   800,
		RerankTemperature: 0.7,
	})

	candidates := rerankCandidates()
	if selected := reranker.Rerank(context.Background(), nil, &candidates, 3); selected == nil {
		t.Fatal("Rerank() = nil, want selection")
	}

	if completer.gotMaxTokens != 800 {
		t.Errorf("maxTokens = %d, want configured 800", completer.gotMaxTokens)
	}
	if completer.gotTemp != 0.7 {
		t.Errorf("temperature = %v, want configured 0.7", completer.gotTemp)
	}
}

func TestLLMReranker_FailuresKeepHeuristicOrder(t *testing.T) {
	tests := []struct {
		name      string
		completer *mockCompleter
		wantCalls int
	}{
		{
			name:      "vendor unavailable",
			completer: &mockCompleter{available: false},
			wantCalls: 0,
		},
		{
			name:      "completion error",
			completer: &mockCompleter{available: true, err: errors.New("upstream 500")},
			wantCalls: 1,
		},
		{
			name:      "no JSON in reply",
			completer: &mockCompleter{available: true, response: "I cannot rank these items."},
			wantCalls: 1,
		},
		{
			name:      "wrong selection shape",
			completer: &mockCompleter{available: true, response: `{"top": "1"}`},
			wantCalls: 1,
		},
		{
			name:      "id is neither string nor number",
			completer: &mockCompleter{available: true, response: `{"top": [true]}`},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reranker := NewLLMReranker(tt.completer, config.RecommendConfig{})

			candidates := rerankCandidates()
			if selected := reranker.Rerank(context.Background(), nil, &candidates, 3); selected != nil {
				t.Errorf("Rerank() = %v, want nil", selected)
			}
			if tt.completer.calls != tt.wantCalls {
				t.Errorf("completer calls = %d, want %d", tt.completer.calls, tt.wantCalls)
			}
		})
	}

	t.Run("nil client", func(t *testing.T) {
		reranker := NewLLMReranker(nil, config.RecommendConfig{})
		candidates := rerankCandidates()
		if selected := reranker.Rerank(context.Background(), nil, &candidates, 3); selected != nil {
			t.Errorf("Rerank() = %v, want nil", selected)
		}
	})
}

func TestLLMReranker_TrimsCandidatePayload(t *testing.T) {
	longTitle := strings.Repeat("아주 긴 상품명 ", 40)
	items := make([]models.RecommendationItem, 30)
	for i := range items {
		items[i] = models.RecommendationItem{
			ID:    fmt.Sprintf("p%02d", i),
			Title: longTitle,
			Price: 10000,
			Tags:  []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		}
	}
	candidates := models.CategoryRecommendations{
		Top:         items,
		Pants:       []models.RecommendationItem{},
		Shoes:       []models.RecommendationItem{},
		Accessories: []models.RecommendationItem{},
	}

	completer := &mockCompleter{available: true, response: `{"top": []}`}
	reranker := NewLLMReranker(completer, config.RecommendConfig{})
	if selected := reranker.Rerank(context.Background(), nil, &candidates, 3); selected == nil {
		t.Fatal("Rerank() = nil, want selection")
	}

	var rows []candidateRow
	blob := strings.TrimPrefix(completer.gotSegments[2], "CANDIDATES_TOP:\n")
	if err := json.Unmarshal([]byte(blob), &rows); err != nil {
		t.Fatalf("unmarshal candidate block: %v", err)
	}

	if len(rows) != maxRerankCandidates {
		t.Errorf("rows = %d, want cap %d", len(rows), maxRerankCandidates)
	}
	for _, row := range rows {
		if got := utf8.RuneCountInString(row.Title); got > maxRerankTitleRunes {
			t.Errorf("title runes = %d, want <= %d", got, maxRerankTitleRunes)
		}
		if len(row.Tags) > maxRerankTags {
			t.Errorf("tags = %d, want <= %d", len(row.Tags), maxRerankTags)
		}
	}
}
