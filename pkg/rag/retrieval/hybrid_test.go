package retrieval

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"growthboss-ai-be/pkg/llm"
	"growthboss-ai-be/pkg/rag"
)

type fakeSearcher struct {
	results map[string][]rag.Chunk
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]rag.Chunk, error) {
	if f.err != nil {
		return nil, f.err
	}
	chunks := f.results[query]
	if len(chunks) > limit {
		chunks = chunks[:limit]
	}
	return chunks, nil
}

type fakeLLM struct {
	generate func(prompt string) (string, error)
	prompts  []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.generate(prompt)
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.Generate(ctx, history[len(history)-1].Content, opts...)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func chunk(text string, distance float64) rag.Chunk {
	return rag.Chunk{
		Text:     text,
		Distance: distance,
		Metadata: rag.Metadata{Domain: "example.com", Title: text},
	}
}

func texts(chunks []rag.Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

func TestRetrieveDeduplicatesAcrossVariants(t *testing.T) {
	shared := chunk("shared pricing advice", 0.2)
	searcher := &fakeSearcher{results: map[string][]rag.Chunk{
		"how to price": {shared, chunk("anchor high", 0.3)},
		"variant one":  {shared, chunk("value ladder", 0.4)},
	}}
	provider := &fakeLLM{generate: func(prompt string) (string, error) {
		return "1. variant one", nil
	}}

	r := NewHybridRetriever(searcher, provider, Config{UseExpansion: true}, nopLogger{})
	got, err := r.Retrieve(context.Background(), "how to price", 8)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	seen := map[string]int{}
	for _, c := range got {
		seen[c.Text]++
	}
	if seen["shared pricing advice"] != 1 {
		t.Errorf("duplicate chunk appeared %d times, want 1", seen["shared pricing advice"])
	}
	if len(got) != 3 {
		t.Errorf("Retrieve() returned %d chunks, want 3 distinct", len(got))
	}
}

func TestRetrieveNeverExceedsK(t *testing.T) {
	var candidates []rag.Chunk
	for i := 0; i < 12; i++ {
		candidates = append(candidates, chunk(fmt.Sprintf("chunk %d", i), float64(i)*0.05))
	}
	searcher := &fakeSearcher{results: map[string][]rag.Chunk{"q": candidates}}
	provider := &fakeLLM{generate: func(prompt string) (string, error) {
		return "", errors.New("should not be called")
	}}

	r := NewHybridRetriever(searcher, provider, Config{}, nopLogger{})
	got, err := r.Retrieve(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Retrieve() returned %d chunks, want 5", len(got))
	}
}

func TestHybridSearchSortsByCombinedScore(t *testing.T) {
	// 12 distinct candidates, keyword fusion on, expansion on, no re-rank:
	// the result must be exactly 5 chunks in descending combined score order.
	var candidates []rag.Chunk
	for i := 0; i < 12; i++ {
		text := fmt.Sprintf("document %d about strategy", i)
		if i%3 == 0 {
			text = fmt.Sprintf("document %d about price offer service", i)
		}
		candidates = append(candidates, chunk(text, 0.1+float64(i)*0.05))
	}
	searcher := &fakeSearcher{results: map[string][]rag.Chunk{
		"How do I price a service offer?": candidates,
		"What should I charge?":           nil,
	}}
	provider := &fakeLLM{generate: func(prompt string) (string, error) {
		return "1. What should I charge?", nil
	}}

	r := NewHybridRetriever(searcher, provider, Config{UseExpansion: true, UseKeyword: true}, nopLogger{})
	got, err := r.Retrieve(context.Background(), "How do I price a service offer?", 5)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Retrieve() returned %d chunks, want 5", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CombinedScore > got[i-1].CombinedScore {
			t.Errorf("combined score not descending at %d: %f > %f", i, got[i].CombinedScore, got[i-1].CombinedScore)
		}
	}
}

func TestKeywordFusionPrefersMatchingChunks(t *testing.T) {
	// Same distance, different keyword overlap: the matching chunk wins.
	matching := chunk("price your offer with confidence", 0.3)
	unrelated := chunk("completely different topic entirely", 0.3)
	searcher := &fakeSearcher{results: map[string][]rag.Chunk{
		"price offer": {unrelated, matching},
	}}
	provider := &fakeLLM{generate: func(prompt string) (string, error) {
		return "", errors.New("unused")
	}}

	r := NewHybridRetriever(searcher, provider, Config{UseKeyword: true}, nopLogger{})
	got, err := r.Retrieve(context.Background(), "price offer", 2)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if got[0].Text != matching.Text {
		t.Errorf("first chunk = %q, want the keyword-matching chunk first", got[0].Text)
	}
}

func TestExpansionFallbackMatchesDisabledExpansion(t *testing.T) {
	candidates := []rag.Chunk{
		chunk("a", 0.1), chunk("b", 0.2), chunk("c", 0.3),
	}
	searcher := &fakeSearcher{results: map[string][]rag.Chunk{"q": candidates}}

	failing := &fakeLLM{generate: func(prompt string) (string, error) {
		return "", errors.New("model unavailable")
	}}
	withExpansion := NewHybridRetriever(searcher, failing, Config{UseExpansion: true}, nopLogger{})
	gotExpanded, err := withExpansion.Retrieve(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	unused := &fakeLLM{generate: func(prompt string) (string, error) {
		return "", errors.New("unused")
	}}
	withoutExpansion := NewHybridRetriever(searcher, unused, Config{}, nopLogger{})
	gotPlain, err := withoutExpansion.Retrieve(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if !reflect.DeepEqual(texts(gotExpanded), texts(gotPlain)) {
		t.Errorf("expansion fallback order %v, want %v", texts(gotExpanded), texts(gotPlain))
	}
}

func TestRerankFallbackUsesDistanceOrder(t *testing.T) {
	// Combined-score order differs from distance order here; a garbage
	// re-rank response must yield ascending distance, truncated to k.
	candidates := []rag.Chunk{
		chunk("offer pricing value anchor", 0.5),
		chunk("nothing relevant", 0.1),
		chunk("offer pricing", 0.3),
		chunk("unrelated words", 0.2),
	}
	searcher := &fakeSearcher{results: map[string][]rag.Chunk{
		"offer pricing value anchor": candidates,
	}}
	provider := &fakeLLM{generate: func(prompt string) (string, error) {
		if strings.HasPrefix(prompt, "Rank these document snippets") {
			return "most relevant first, obviously", nil
		}
		return "", errors.New("unexpected call")
	}}

	r := NewHybridRetriever(searcher, provider, Config{UseKeyword: true, UseRerank: true}, nopLogger{})
	got, err := r.Retrieve(context.Background(), "offer pricing value anchor", 2)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	want := []string{"nothing relevant", "unrelated words"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("rerank fallback order %v, want %v", texts(got), want)
	}
}

func TestRerankReordersByReturnedIndices(t *testing.T) {
	candidates := []rag.Chunk{
		chunk("a", 0.1), chunk("b", 0.2), chunk("c", 0.3), chunk("d", 0.4),
	}
	searcher := &fakeSearcher{results: map[string][]rag.Chunk{"q": candidates}}
	provider := &fakeLLM{generate: func(prompt string) (string, error) {
		return "2, 0", nil
	}}

	r := NewHybridRetriever(searcher, provider, Config{UseRerank: true}, nopLogger{})
	got, err := r.Retrieve(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("reranked order %v, want %v", texts(got), want)
	}
}

func TestSearchErrorPropagates(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("connection refused")}
	provider := &fakeLLM{generate: func(prompt string) (string, error) {
		return "", errors.New("unused")
	}}

	r := NewHybridRetriever(searcher, provider, Config{}, nopLogger{})
	if _, err := r.Retrieve(context.Background(), "q", 3); err == nil {
		t.Fatal("Retrieve() error = nil, want hard failure from searcher")
	}
}

func TestParseRankedIndices(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{name: "clean list", text: "2, 0, 1", want: []int{2, 0, 1}},
		{name: "no spaces", text: "3,1,2", want: []int{3, 1, 2}},
		{name: "mixed garbage", text: "1, two, 3", want: []int{1, 3}},
		{name: "non numeric", text: "most relevant first", want: nil},
		{name: "empty", text: "", want: nil},
		{name: "negative rejected", text: "-1, 2", want: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRankedIndices(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseRankedIndices(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestApplyRankingSkipsAndAppends(t *testing.T) {
	candidates := []rag.Chunk{chunk("a", 0), chunk("b", 0), chunk("c", 0)}

	// Duplicate and out-of-range indices are skipped; untouched documents
	// are appended in their prior order.
	got := applyRanking(candidates, []int{1, 1, 9, 0}, 3)
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("applyRanking() = %v, want %v", texts(got), want)
	}
}

func TestParseVariations(t *testing.T) {
	text := "Variations:\n1. How should I set prices?\n2) What pricing works best?\n\n3. How much to charge?"
	got := parseVariations(text)
	want := []string{"How should I set prices?", "What pricing works best?", "How much to charge?"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseVariations() = %v, want %v", got, want)
	}
}
