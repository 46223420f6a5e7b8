// Package retrieval implements hybrid search: query expansion, multi-query
// semantic fan-out, keyword score fusion and LLM re-ranking.
package retrieval

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"growthboss-ai-be/internal/pkg/logger"
	"growthboss-ai-be/pkg/llm"
	"growthboss-ai-be/pkg/rag"
)

// SemanticSearcher is the nearest-neighbour lookup the retriever fans out to.
type SemanticSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]rag.Chunk, error)
}

// Config toggles the optional pipeline stages.
type Config struct {
	UseExpansion bool
	UseKeyword   bool
	UseRerank    bool
}

const (
	semanticWeight = 0.7
	keywordWeight  = 0.3

	// rerank cost controls
	maxRerankDocs     = 20
	maxRerankDocChars = 500
)

var (
	enumerationPrefix = regexp.MustCompile(`^\d+[\.\)]\s*`)
	wordToken         = regexp.MustCompile(`\b\w+\b`)
)

type HybridRetriever struct {
	searcher SemanticSearcher
	provider llm.LLMProvider
	config   Config
	log      logger.ILogger
}

func NewHybridRetriever(searcher SemanticSearcher, provider llm.LLMProvider, config Config, log logger.ILogger) *HybridRetriever {
	return &HybridRetriever{
		searcher: searcher,
		provider: provider,
		config:   config,
		log:      log,
	}
}

// Retrieve returns the k most relevant chunks for the query. Expansion and
// re-ranking degrade to fallbacks on failure; only the underlying semantic
// search may fail the call.
func (r *HybridRetriever) Retrieve(ctx context.Context, query string, k int) ([]rag.Chunk, error) {
	if k <= 0 {
		k = 8
	}

	// Stage 1: query expansion
	queries := []string{query}
	if r.config.UseExpansion {
		queries = r.expandQuery(ctx, query)
	}

	// Stage 2: semantic fan-out, deduplicated by exact text
	candidates, err := r.fanOut(ctx, queries, 2*k)
	if err != nil {
		return nil, err
	}

	// Stage 3: keyword fusion, or plain distance order
	if r.config.UseKeyword {
		fuseKeywordScores(query, candidates)
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].CombinedScore > candidates[j].CombinedScore
		})
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Distance < candidates[j].Distance
		})
	}

	// Stage 4: LLM re-ranking, only worth it when we have more than k
	if r.config.UseRerank && len(candidates) > k {
		pool := candidates
		if len(pool) > 2*k {
			pool = pool[:2*k]
		}
		candidates = r.reRank(ctx, query, pool, k)
	}

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// expandQuery asks the model for up to 3 paraphrases. The original query is
// always first; any failure falls back to the original alone.
func (r *HybridRetriever) expandQuery(ctx context.Context, query string) []string {
	prompt := "Generate 3 different ways to ask the same question. " +
		"Each variation should use different wording but maintain the same intent. " +
		"Format as a numbered list, one query per line.\n\n" +
		fmt.Sprintf("Original query: %s\n\n", query) +
		"Variations:"

	resp, err := r.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(150),
	)
	if err != nil {
		r.log.Warn("retrieval", "query expansion degraded, using original query", map[string]interface{}{
			"error": err.Error(),
		})
		return []string{query}
	}

	variations := parseVariations(resp)
	if len(variations) > 3 {
		variations = variations[:3]
	}
	return append([]string{query}, variations...)
}

func parseVariations(text string) []string {
	var variations []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Variations") {
			continue
		}
		variations = append(variations, enumerationPrefix.ReplaceAllString(line, ""))
	}
	return variations
}

// fanOut searches every query variant concurrently, then merges in variant
// order, keeping the first occurrence of each exact chunk text.
func (r *HybridRetriever) fanOut(ctx context.Context, queries []string, limit int) ([]rag.Chunk, error) {
	results := make([][]rag.Chunk, len(queries))
	errCh := make(chan error, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			chunks, err := r.searcher.Search(ctx, q, limit)
			if err != nil {
				errCh <- fmt.Errorf("search variant %d: %w", i, err)
				return
			}
			results[i] = chunks
		}(i, q)
	}
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var merged []rag.Chunk
	for _, chunks := range results {
		for _, c := range chunks {
			if seen[c.Text] {
				continue
			}
			seen[c.Text] = true
			merged = append(merged, c)
		}
	}
	return merged, nil
}

// fuseKeywordScores writes KeywordScore and CombinedScore in place. The
// keyword score is the fraction of distinct original-query tokens present in
// the chunk text.
func fuseKeywordScores(query string, candidates []rag.Chunk) {
	tokens := wordToken.FindAllString(strings.ToLower(query), -1)
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
	}
	total := len(tokenSet)
	if total == 0 {
		total = 1
	}

	for i := range candidates {
		text := strings.ToLower(candidates[i].Text)
		matches := 0
		for t := range tokenSet {
			if strings.Contains(text, t) {
				matches++
			}
		}
		keywordScore := float64(matches) / float64(total)
		semanticScore := 1.0 - candidates[i].Distance

		candidates[i].KeywordScore = keywordScore
		candidates[i].CombinedScore = semanticScore*semanticWeight + keywordScore*keywordWeight
	}
}

// reRank asks the model for a relevance ordering over the candidate indices.
// Unparseable or failed responses fall back to ascending distance.
func (r *HybridRetriever) reRank(ctx context.Context, query string, candidates []rag.Chunk, k int) []rag.Chunk {
	if len(candidates) <= k {
		return candidates
	}

	docs := candidates
	if len(docs) > maxRerankDocs {
		docs = docs[:maxRerankDocs]
	}

	var sb strings.Builder
	sb.WriteString("Rank these document snippets by relevance to the query. ")
	sb.WriteString("Return a comma-separated list of indices (0-based), most relevant first.\n\n")
	sb.WriteString(fmt.Sprintf("Query: %s\n\n", query))
	sb.WriteString("Documents:\n")
	for i, doc := range docs {
		text := doc.Text
		if len(text) > maxRerankDocChars {
			text = text[:maxRerankDocChars]
		}
		if len(text) > 200 {
			text = text[:200]
		}
		sb.WriteString(fmt.Sprintf("%d. %s...\n", i, text))
	}
	sb.WriteString("\nRanked indices (comma-separated):")

	resp, err := r.provider.Generate(ctx, sb.String(),
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(50),
	)
	if err != nil {
		r.log.Warn("retrieval", "re-rank degraded, using distance order", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackByDistance(candidates, k)
	}

	indices := parseRankedIndices(resp)
	if len(indices) == 0 {
		r.log.Warn("retrieval", "re-rank returned no parseable indices, using distance order", nil)
		return fallbackByDistance(candidates, k)
	}

	return applyRanking(candidates, indices, k)
}

// parseRankedIndices accepts only pure-digit comma-separated tokens.
func parseRankedIndices(text string) []int {
	var indices []int
	for _, tok := range strings.Split(strings.TrimSpace(text), ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		digitsOnly := true
		for _, r := range tok {
			if r < '0' || r > '9' {
				digitsOnly = false
				break
			}
		}
		if !digitsOnly {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		indices = append(indices, n)
	}
	return indices
}

// applyRanking walks the model's indices, skipping out-of-range and duplicate
// entries, then appends the untouched candidates in their prior order.
func applyRanking(candidates []rag.Chunk, indices []int, k int) []rag.Chunk {
	used := make(map[int]bool)
	reordered := make([]rag.Chunk, 0, len(candidates))
	for _, idx := range indices {
		if idx < 0 || idx >= len(candidates) || used[idx] {
			continue
		}
		reordered = append(reordered, candidates[idx])
		used[idx] = true
	}
	for i, c := range candidates {
		if !used[i] {
			reordered = append(reordered, c)
		}
	}
	if len(reordered) > k {
		reordered = reordered[:k]
	}
	return reordered
}

func fallbackByDistance(candidates []rag.Chunk, k int) []rag.Chunk {
	sorted := make([]rag.Chunk, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}
