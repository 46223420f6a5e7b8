package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"growthboss-ai-be/pkg/rag"
)

type stubRetriever struct {
	chunks []rag.Chunk
	err    error
	lastK  int
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string, k int) ([]rag.Chunk, error) {
	s.lastK = k
	if s.err != nil {
		return nil, s.err
	}
	return s.chunks, nil
}

type stubMemory struct {
	recent    []Exchange
	recentErr error
	appendErr error

	appendedQuery    string
	appendedAnswer   string
	appendedMetadata map[string]interface{}
}

func (s *stubMemory) Recent(ctx context.Context, sessionID string, n int) ([]Exchange, error) {
	if s.recentErr != nil {
		return nil, s.recentErr
	}
	recent := s.recent
	if len(recent) > n {
		recent = recent[len(recent)-n:]
	}
	return recent, nil
}

func (s *stubMemory) Append(ctx context.Context, sessionID, query, answer string, metadata map[string]interface{}) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appendedQuery = query
	s.appendedAnswer = answer
	s.appendedMetadata = metadata
	return nil
}

type stubAnalytics struct {
	query       string
	resultCount int
	sessionID   string
	calls       int
}

func (s *stubAnalytics) Record(query string, latency time.Duration, resultCount int, sessionID string) {
	s.calls++
	s.query = query
	s.resultCount = resultCount
	s.sessionID = sessionID
}

func TestResearchWindowsConversationMemory(t *testing.T) {
	// Seven prior exchanges; only the last five appear in the prompt,
	// oldest first, with answers truncated to the preview length.
	var history []Exchange
	for i := 1; i <= 7; i++ {
		history = append(history, Exchange{
			Query:  fmt.Sprintf("question %d", i),
			Answer: strings.Repeat("x", 250),
		})
	}
	memory := &stubMemory{recent: history}
	retriever := &stubRetriever{chunks: []rag.Chunk{
		evidenceChunk("insight", "garyvaynerchuk.com", ""),
	}}
	provider := &stubProvider{generate: func(prompt string) (string, error) {
		return "final answer", nil
	}}

	r := NewResearcher(retriever, provider, memory, nil)
	if _, err := r.Research(context.Background(), "sess-1", "question 8", 4); err != nil {
		t.Fatalf("Research() error = %v", err)
	}

	prompt := provider.prompts[0]
	if !strings.Contains(prompt, "Previous conversation:") {
		t.Fatal("prompt missing the conversation preamble")
	}
	if strings.Contains(prompt, "question 1") || strings.Contains(prompt, "question 2") {
		t.Error("prompt includes exchanges older than the memory window")
	}
	for i := 3; i <= 7; i++ {
		if !strings.Contains(prompt, fmt.Sprintf("Q: question %d", i)) {
			t.Errorf("prompt missing windowed exchange %d", i)
		}
	}
	if strings.Contains(prompt, strings.Repeat("x", 201)) {
		t.Error("remembered answer was not truncated to the preview length")
	}
	oldest := strings.Index(prompt, "Q: question 3")
	newest := strings.Index(prompt, "Q: question 7")
	if oldest > newest {
		t.Error("windowed exchanges are not ordered oldest first")
	}
}

func TestResearchPromptOrder(t *testing.T) {
	memory := &stubMemory{recent: []Exchange{{Query: "earlier", Answer: "earlier answer"}}}
	retriever := &stubRetriever{chunks: []rag.Chunk{
		evidenceChunk("insight", "garyvaynerchuk.com", ""),
	}}
	provider := &stubProvider{generate: func(prompt string) (string, error) {
		return "final answer", nil
	}}

	r := NewResearcher(retriever, provider, memory, nil)
	if _, err := r.Research(context.Background(), "sess-1", "the question", 4); err != nil {
		t.Fatalf("Research() error = %v", err)
	}

	prompt := provider.prompts[0]
	role := strings.Index(prompt, "You are a marketing researcher")
	conversation := strings.Index(prompt, "Previous conversation:")
	evidence := strings.Index(prompt, "Retrieved Context:")
	question := strings.Index(prompt, "Question: the question")
	if role < 0 || conversation < 0 || evidence < 0 || question < 0 {
		t.Fatalf("prompt missing a required section:\n%s", prompt)
	}
	if !(role < conversation && conversation < evidence && evidence < question) {
		t.Error("prompt sections out of order: want role, conversation, evidence, question")
	}
	if !strings.HasSuffix(prompt, "Answer:") {
		t.Error("prompt does not end with the answer cue")
	}
	if !strings.Contains(prompt, "[Source: insight | garyvaynerchuk.com]") {
		t.Error("evidence block missing the title and domain attribution")
	}
}

func TestResearchRecordsAnalyticsAndMemory(t *testing.T) {
	memory := &stubMemory{}
	analytics := &stubAnalytics{}
	retriever := &stubRetriever{chunks: []rag.Chunk{
		evidenceChunk("a", "one.com", ""),
		evidenceChunk("b", "two.com", ""),
	}}
	provider := &stubProvider{generate: func(prompt string) (string, error) {
		return " the answer ", nil
	}}

	r := NewResearcher(retriever, provider, memory, analytics)
	result, err := r.Research(context.Background(), "sess-9", "what works?", 0)
	if err != nil {
		t.Fatalf("Research() error = %v", err)
	}

	if retriever.lastK != 12 {
		t.Errorf("default k = %d, want 12", retriever.lastK)
	}
	if analytics.calls != 1 {
		t.Fatalf("analytics recorded %d times, want 1", analytics.calls)
	}
	if analytics.query != "what works?" || analytics.resultCount != 2 || analytics.sessionID != "sess-9" {
		t.Errorf("analytics recorded (%q, %d, %q)", analytics.query, analytics.resultCount, analytics.sessionID)
	}
	if memory.appendedQuery != "what works?" || memory.appendedAnswer != "the answer" {
		t.Errorf("memory appended (%q, %q)", memory.appendedQuery, memory.appendedAnswer)
	}
	if got := memory.appendedMetadata["result_count"]; got != 2 {
		t.Errorf("appended metadata result_count = %v, want 2", got)
	}
	if result.SessionID != "sess-9" {
		t.Errorf("result session = %q, want sess-9", result.SessionID)
	}
}

func TestResearchToleratesMemoryReadFailure(t *testing.T) {
	memory := &stubMemory{recentErr: errors.New("cache cold")}
	retriever := &stubRetriever{chunks: []rag.Chunk{
		evidenceChunk("insight", "one.com", ""),
	}}
	provider := &stubProvider{generate: func(prompt string) (string, error) {
		return "answer", nil
	}}

	r := NewResearcher(retriever, provider, memory, nil)
	if _, err := r.Research(context.Background(), "sess-1", "q", 4); err != nil {
		t.Fatalf("Research() error = %v, want read failure tolerated", err)
	}
	if strings.Contains(provider.prompts[0], "Previous conversation:") {
		t.Error("prompt includes a preamble despite the memory read failing")
	}
}

func TestResearchFailsWhenAppendFails(t *testing.T) {
	memory := &stubMemory{appendErr: errors.New("db write refused")}
	retriever := &stubRetriever{}
	provider := &stubProvider{generate: func(prompt string) (string, error) {
		return "answer", nil
	}}

	r := NewResearcher(retriever, provider, memory, nil)
	if _, err := r.Research(context.Background(), "sess-1", "q", 4); err == nil {
		t.Fatal("Research() error = nil, want append failure")
	}
}

func TestResearchSkipsMemoryWithoutSession(t *testing.T) {
	memory := &stubMemory{appendErr: errors.New("must not be called")}
	retriever := &stubRetriever{}
	provider := &stubProvider{generate: func(prompt string) (string, error) {
		return "answer", nil
	}}

	r := NewResearcher(retriever, provider, memory, nil)
	if _, err := r.Research(context.Background(), "", "q", 4); err != nil {
		t.Fatalf("Research() error = %v, want memory skipped for empty session", err)
	}
}
