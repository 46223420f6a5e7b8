// Package vectorstore wraps the pgvector-backed chunk table behind a small
// semantic search API used by the retrieval pipeline and the agents.
package vectorstore

import (
	"context"
	"fmt"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/pkg/embedding"
	"growthboss-ai-be/pkg/rag"
)

// Searcher is the nearest-neighbour read side of the chunk repository.
type Searcher interface {
	SearchNearest(ctx context.Context, embedding []float32, limit int) ([]*entity.ScoredChunk, error)
}

// Writer is the ingestion write side of the chunk repository.
type Writer interface {
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	DeleteBySource(ctx context.Context, source string) error
}

const (
	// maxPerDomain caps how many chunks a single source domain may occupy
	// in a diversity-filtered result.
	maxPerDomain = 3
)

type Store struct {
	embedder embedding.EmbeddingProvider
	searcher Searcher
	writer   Writer
}

func NewStore(embedder embedding.EmbeddingProvider, searcher Searcher, writer Writer) *Store {
	return &Store{
		embedder: embedder,
		searcher: searcher,
		writer:   writer,
	}
}

// Search embeds the query and returns the limit nearest chunks by cosine
// distance, ascending. No diversity filtering is applied.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]rag.Chunk, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.searcher.SearchNearest(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("nearest search: %w", err)
	}

	return toChunks(scored), nil
}

// Query returns the k best chunks for the query with source-domain diversity:
// it overfetches, then keeps at most maxPerDomain chunks per domain while
// preserving distance order. If the diversity pass keeps nothing, the plain
// ranked head is returned instead.
func (s *Store) Query(ctx context.Context, query string, k int) ([]rag.Chunk, error) {
	if k <= 0 {
		k = 5
	}

	overfetch := 3 * k
	if k+10 > overfetch {
		overfetch = k + 10
	}

	ranked, err := s.Search(ctx, query, overfetch)
	if err != nil {
		return nil, err
	}

	kept := DiversityFilter(ranked, k)
	if len(kept) == 0 {
		if len(ranked) > k {
			ranked = ranked[:k]
		}
		return ranked, nil
	}
	return kept, nil
}

// Upsert embeds and stores the chunks. Chunks carrying a non-empty Source
// replace any previously ingested chunks for that source.
func (s *Store) Upsert(ctx context.Context, chunks []rag.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	replaced := make(map[string]bool)
	entities := make([]*entity.Chunk, 0, len(chunks))
	for _, c := range chunks {
		vector, err := s.embedder.Embed(ctx, c.Text)
		if err != nil {
			return fmt.Errorf("embed chunk: %w", err)
		}

		if src := c.Metadata.Source; src != "" && !replaced[src] {
			if err := s.writer.DeleteBySource(ctx, src); err != nil {
				return fmt.Errorf("replace source %s: %w", src, err)
			}
			replaced[src] = true
		}

		entities = append(entities, &entity.Chunk{
			Text:       c.Text,
			Source:     c.Metadata.Source,
			Domain:     c.Metadata.Domain,
			Title:      c.Metadata.Title,
			Kind:       c.Metadata.Kind,
			ChunkIndex: c.Metadata.ChunkIndex,
			Embedding:  vector,
		})
	}

	return s.writer.CreateBulk(ctx, entities)
}

// DiversityFilter keeps at most maxPerDomain chunks per source domain,
// scanning in ranked order, and stops once k chunks are kept.
func DiversityFilter(ranked []rag.Chunk, k int) []rag.Chunk {
	kept := make([]rag.Chunk, 0, k)
	perDomain := make(map[string]int)
	for _, c := range ranked {
		if perDomain[c.Metadata.Domain] >= maxPerDomain {
			continue
		}
		perDomain[c.Metadata.Domain]++
		kept = append(kept, c)
		if len(kept) >= k {
			break
		}
	}
	return kept
}

func toChunks(scored []*entity.ScoredChunk) []rag.Chunk {
	chunks := make([]rag.Chunk, 0, len(scored))
	for _, s := range scored {
		if s == nil || s.Chunk == nil {
			continue
		}
		chunks = append(chunks, rag.Chunk{
			Text: s.Chunk.Text,
			Metadata: rag.Metadata{
				Source:     s.Chunk.Source,
				Domain:     s.Chunk.Domain,
				Title:      s.Chunk.Title,
				Kind:       s.Chunk.Kind,
				ChunkIndex: s.Chunk.ChunkIndex,
			},
			Distance: s.Distance,
		})
	}
	return chunks
}
