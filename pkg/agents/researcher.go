package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"growthboss-ai-be/pkg/llm"
	"growthboss-ai-be/pkg/rag"
)

const (
	// memoryWindow is the number of prior exchanges included in the prompt.
	memoryWindow = 5
	// answerPreviewChars bounds each remembered answer in the preamble.
	answerPreviewChars = 200
)

// Retriever is the ranked evidence source the researcher draws on.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]rag.Chunk, error)
}

// Exchange is one remembered query/answer pair, oldest first when listed.
type Exchange struct {
	Query  string
	Answer string
}

// ConversationMemory is the session-scoped exchange history.
type ConversationMemory interface {
	Recent(ctx context.Context, sessionID string, n int) ([]Exchange, error)
	Append(ctx context.Context, sessionID, query, answer string, metadata map[string]interface{}) error
}

// AnalyticsSink records query telemetry. Implementations must never block or
// fail the answer path.
type AnalyticsSink interface {
	Record(query string, latency time.Duration, resultCount int, sessionID string)
}

// ResearchResult is the single-agent answer with its evidence.
type ResearchResult struct {
	Answer    string      `json:"answer"`
	Evidence  []rag.Chunk `json:"evidence"`
	SessionID string      `json:"session_id"`
}

// Researcher wires conversation memory, hybrid retrieval and one LLM call
// into the default question-answering path.
type Researcher struct {
	retriever Retriever
	provider  llm.LLMProvider
	memory    ConversationMemory
	analytics AnalyticsSink
}

func NewResearcher(retriever Retriever, provider llm.LLMProvider, memory ConversationMemory, analytics AnalyticsSink) *Researcher {
	return &Researcher{
		retriever: retriever,
		provider:  provider,
		memory:    memory,
		analytics: analytics,
	}
}

// Research answers the question using retrieved evidence and the session's
// recent conversation, then appends the new exchange to memory.
func (r *Researcher) Research(ctx context.Context, sessionID, question string, k int) (*ResearchResult, error) {
	if k <= 0 {
		k = 12
	}

	preamble := ""
	if r.memory != nil && sessionID != "" {
		recent, err := r.memory.Recent(ctx, sessionID, memoryWindow)
		if err == nil {
			preamble = buildConversationPreamble(recent)
		}
	}

	start := time.Now()
	evidence, err := r.retriever.Retrieve(ctx, question, k)
	if err != nil {
		return nil, fmt.Errorf("researcher retrieval: %w", err)
	}

	if r.analytics != nil {
		r.analytics.Record(question, time.Since(start), len(evidence), sessionID)
	}

	prompt := buildResearchPrompt(question, preamble, evidence)
	answer, err := r.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("researcher answer: %w", err)
	}
	answer = strings.TrimSpace(answer)

	if r.memory != nil && sessionID != "" {
		metadata := map[string]interface{}{"result_count": len(evidence)}
		if err := r.memory.Append(ctx, sessionID, question, answer, metadata); err != nil {
			return nil, fmt.Errorf("append exchange: %w", err)
		}
	}

	return &ResearchResult{
		Answer:    answer,
		Evidence:  evidence,
		SessionID: sessionID,
	}, nil
}

// buildConversationPreamble renders the recent exchanges, oldest first, with
// answers truncated to keep the prompt bounded.
func buildConversationPreamble(recent []Exchange) string {
	if len(recent) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Previous conversation:\n")
	for i, ex := range recent {
		answer := ex.Answer
		if len(answer) > answerPreviewChars {
			answer = answer[:answerPreviewChars]
		}
		sb.WriteString(fmt.Sprintf("\n%d. Q: %s\n   A: %s...\n", i+1, ex.Query, answer))
	}
	return sb.String()
}

// buildResearchPrompt assembles role, conversation context, retrieved
// evidence and the question, in that order.
func buildResearchPrompt(question, preamble string, evidence []rag.Chunk) string {
	blocks := make([]string, len(evidence))
	for i, c := range evidence {
		title := c.Metadata.Title
		if title == "" {
			title = c.Metadata.Source
		}
		if title == "" {
			title = "unknown"
		}
		domain := c.Metadata.Domain
		if domain == "" {
			domain = "unknown"
		}
		blocks[i] = fmt.Sprintf("[Source: %s | %s]\n%s", title, domain, c.Text)
	}

	parts := []string{
		"You are a marketing researcher analyzing teachings from Gary Vaynerchuk, Alex Hormozi, and Iman Gadzhi. " +
			"Summarize the most relevant insights to answer the user's question. " +
			"Cite sources inline as (source). Be concise and actionable.",
	}
	if preamble != "" {
		parts = append(parts, "\n"+preamble)
	}
	parts = append(parts, fmt.Sprintf("\nRetrieved Context:\n%s\n\nQuestion: %s\n\nAnswer:",
		strings.Join(blocks, "\n\n"), question))

	return strings.Join(parts, "\n")
}
