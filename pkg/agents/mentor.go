// Package agents implements the mentor council and the single-researcher
// answer paths on top of the retrieval layer.
package agents

import (
	"context"
	"fmt"
	"strings"

	"growthboss-ai-be/pkg/llm"
	"growthboss-ai-be/pkg/rag"
)

// EvidenceSearcher is the plain semantic lookup mentors over-fetch from.
type EvidenceSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]rag.Chunk, error)
}

// MentorResponse is one mentor's answer with the evidence behind it.
// Produced fresh per call, never persisted.
type MentorResponse struct {
	Mentor   string      `json:"mentor"`
	Answer   string      `json:"answer"`
	Evidence []rag.Chunk `json:"evidence"`
}

// MentorAgent answers questions in one persona's voice, preferring evidence
// from that persona's source domains.
type MentorAgent struct {
	persona  Persona
	searcher EvidenceSearcher
	provider llm.LLMProvider
}

func NewMentorAgent(persona Persona, searcher EvidenceSearcher, provider llm.LLMProvider) *MentorAgent {
	return &MentorAgent{
		persona:  persona,
		searcher: searcher,
		provider: provider,
	}
}

func (a *MentorAgent) Persona() Persona {
	return a.persona
}

// Research over-fetches 2k candidates, keeps the first k matching the
// persona's domain filter, and answers in the persona's voice. When nothing
// matches the filter, the first k unfiltered candidates are used instead so
// the mentor always answers with evidence.
func (a *MentorAgent) Research(ctx context.Context, question string, k int) (*MentorResponse, error) {
	if k <= 0 {
		k = 8
	}

	candidates, err := a.searcher.Search(ctx, question, 2*k)
	if err != nil {
		return nil, fmt.Errorf("mentor %s evidence search: %w", a.persona.Name, err)
	}

	evidence := FilterByPersona(candidates, a.persona, k)
	if len(evidence) == 0 {
		evidence = candidates
		if len(evidence) > k {
			evidence = evidence[:k]
		}
	}

	prompt := a.buildPrompt(question, evidence)
	answer, err := a.provider.Generate(ctx, prompt, llm.WithTemperature(a.persona.Temperature))
	if err != nil {
		return nil, fmt.Errorf("mentor %s answer: %w", a.persona.Name, err)
	}

	return &MentorResponse{
		Mentor:   a.persona.Name,
		Answer:   strings.TrimSpace(answer),
		Evidence: evidence,
	}, nil
}

func (a *MentorAgent) buildPrompt(question string, evidence []rag.Chunk) string {
	blocks := make([]string, len(evidence))
	for i, c := range evidence {
		title := c.Metadata.Title
		if title == "" {
			title = c.Metadata.Source
		}
		if title == "" {
			title = "unknown"
		}
		blocks[i] = fmt.Sprintf("[Source: %s]\n%s", title, c.Text)
	}

	return fmt.Sprintf("%s\n\n%s\n\nContext:\n%s\n\nQuestion: %s\n\nAnswer as %s:",
		a.persona.Identity,
		a.persona.Voice,
		strings.Join(blocks, "\n\n"),
		question,
		a.persona.FullName,
	)
}

// FilterByPersona keeps, in order, at most k chunks whose domain or source
// matches one of the persona's filter keywords.
func FilterByPersona(candidates []rag.Chunk, persona Persona, k int) []rag.Chunk {
	var kept []rag.Chunk
	for _, c := range candidates {
		if !matchesPersona(c, persona) {
			continue
		}
		kept = append(kept, c)
		if len(kept) >= k {
			break
		}
	}
	return kept
}

func matchesPersona(c rag.Chunk, persona Persona) bool {
	domain := strings.ToLower(c.Metadata.Domain)
	source := strings.ToLower(c.Metadata.Source)
	for _, kw := range persona.DomainKeywords {
		if strings.Contains(domain, kw) {
			return true
		}
	}
	for _, kw := range persona.SourceKeywords {
		if strings.Contains(source, kw) {
			return true
		}
	}
	return false
}
