package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"growthboss-ai-be/internal/entity"
	"growthboss-ai-be/pkg/rag"
)

type fakeEmbedder struct {
	err   error
	calls []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, text)
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeSearcher struct {
	scored    []*entity.ScoredChunk
	err       error
	lastLimit int
}

func (f *fakeSearcher) SearchNearest(ctx context.Context, embedding []float32, limit int) ([]*entity.ScoredChunk, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	scored := f.scored
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

type fakeWriter struct {
	created []*entity.Chunk
	deleted []string
	err     error
}

func (f *fakeWriter) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, chunks...)
	return nil
}

func (f *fakeWriter) DeleteBySource(ctx context.Context, source string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, source)
	return nil
}

func scoredChunk(text, domain string, distance float64) *entity.ScoredChunk {
	return &entity.ScoredChunk{
		Chunk:    &entity.Chunk{Text: text, Domain: domain, Title: text},
		Distance: distance,
	}
}

func domains(chunks []rag.Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Metadata.Domain
	}
	return out
}

func TestDiversityFilter(t *testing.T) {
	tests := []struct {
		name   string
		ranked []rag.Chunk
		k      int
		want   []string
	}{
		{
			name: "caps a dominant domain at three",
			ranked: []rag.Chunk{
				{Metadata: rag.Metadata{Domain: "a"}},
				{Metadata: rag.Metadata{Domain: "a"}},
				{Metadata: rag.Metadata{Domain: "a"}},
				{Metadata: rag.Metadata{Domain: "a"}},
				{Metadata: rag.Metadata{Domain: "b"}},
			},
			k:    5,
			want: []string{"a", "a", "a", "b"},
		},
		{
			name: "stops at k",
			ranked: []rag.Chunk{
				{Metadata: rag.Metadata{Domain: "a"}},
				{Metadata: rag.Metadata{Domain: "b"}},
				{Metadata: rag.Metadata{Domain: "c"}},
			},
			k:    2,
			want: []string{"a", "b"},
		},
		{
			name:   "empty input",
			ranked: nil,
			k:      5,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domains(DiversityFilter(tt.ranked, tt.k))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DiversityFilter() domains = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryOverfetchesForDiversity(t *testing.T) {
	tests := []struct {
		name      string
		k         int
		wantLimit int
	}{
		{name: "triple k when large", k: 8, wantLimit: 24},
		{name: "floor of k plus ten when small", k: 2, wantLimit: 12},
		{name: "default k when non positive", k: 0, wantLimit: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &fakeSearcher{}
			store := NewStore(&fakeEmbedder{}, searcher, &fakeWriter{})

			if _, err := store.Query(context.Background(), "q", tt.k); err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if searcher.lastLimit != tt.wantLimit {
				t.Errorf("overfetch limit = %d, want %d", searcher.lastLimit, tt.wantLimit)
			}
		})
	}
}

func TestQueryAppliesDomainCap(t *testing.T) {
	var scored []*entity.ScoredChunk
	for i := 0; i < 10; i++ {
		scored = append(scored, scoredChunk(fmt.Sprintf("chunk %d", i), "one.com", float64(i)*0.1))
	}
	scored = append(scored, scoredChunk("other", "two.com", 0.95))

	searcher := &fakeSearcher{scored: scored}
	store := NewStore(&fakeEmbedder{}, searcher, &fakeWriter{})

	got, err := store.Query(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	want := []string{"one.com", "one.com", "one.com", "two.com"}
	if !reflect.DeepEqual(domains(got), want) {
		t.Errorf("Query() domains = %v, want %v", domains(got), want)
	}
}

func TestQueryEmbedErrorPropagates(t *testing.T) {
	store := NewStore(&fakeEmbedder{err: errors.New("rate limited")}, &fakeSearcher{}, &fakeWriter{})
	if _, err := store.Query(context.Background(), "q", 5); err == nil {
		t.Fatal("Query() error = nil, want embed failure")
	}
}

func TestUpsertReplacesSourceOnce(t *testing.T) {
	writer := &fakeWriter{}
	store := NewStore(&fakeEmbedder{}, &fakeSearcher{}, writer)

	chunks := []rag.Chunk{
		{Text: "part one", Metadata: rag.Metadata{Source: "a.md", Domain: "one.com", ChunkIndex: 0}},
		{Text: "part two", Metadata: rag.Metadata{Source: "a.md", Domain: "one.com", ChunkIndex: 1}},
		{Text: "other doc", Metadata: rag.Metadata{Source: "b.md", Domain: "two.com", ChunkIndex: 0}},
	}
	if err := store.Upsert(context.Background(), chunks); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// One delete per distinct source, regardless of chunk count.
	wantDeleted := []string{"a.md", "b.md"}
	if !reflect.DeepEqual(writer.deleted, wantDeleted) {
		t.Errorf("deleted sources = %v, want %v", writer.deleted, wantDeleted)
	}
	if len(writer.created) != 3 {
		t.Fatalf("created %d chunks, want 3", len(writer.created))
	}
	for i, c := range writer.created {
		if len(c.Embedding) == 0 {
			t.Errorf("chunk %d stored without embedding", i)
		}
	}
}

func TestUpsertEmptyIsNoop(t *testing.T) {
	writer := &fakeWriter{err: errors.New("must not be called")}
	store := NewStore(&fakeEmbedder{err: errors.New("must not be called")}, &fakeSearcher{}, writer)

	if err := store.Upsert(context.Background(), nil); err != nil {
		t.Fatalf("Upsert(nil) error = %v", err)
	}
}
