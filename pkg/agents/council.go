package agents

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"growthboss-ai-be/pkg/llm"
)

// DefaultBusinessContext is used when the caller supplies no agency context.
const DefaultBusinessContext = "Marketing agency focused on client acquisition, offer design, content-led inbound, outbound SDR support, profitable delivery SLAs."

// defaultCouncilEvidenceK is the per-mentor evidence budget when the caller
// does not configure one.
const defaultCouncilEvidenceK = 6

// DeliberationResult is the council's synthesized answer plus the individual
// mentor responses, in persona order. Ephemeral, returned to the caller only.
type DeliberationResult struct {
	Question        string           `json:"question"`
	Synthesis       string           `json:"synthesis"`
	MentorResponses []MentorResponse `json:"mentor_responses"`
}

// Council runs the three mentors in parallel and synthesizes their answers.
// Deliberation fails fast when any mentor is unavailable rather than
// synthesizing over a silently missing perspective.
type Council struct {
	mentors   []*MentorAgent
	provider  llm.LLMProvider
	evidenceK int
}

func NewCouncil(searcher EvidenceSearcher, provider llm.LLMProvider, evidenceK int) *Council {
	if evidenceK <= 0 {
		evidenceK = defaultCouncilEvidenceK
	}
	personas := CouncilPersonas()
	mentors := make([]*MentorAgent, len(personas))
	for i, p := range personas {
		mentors[i] = NewMentorAgent(p, searcher, provider)
	}
	return &Council{
		mentors:   mentors,
		provider:  provider,
		evidenceK: evidenceK,
	}
}

// Deliberate has every mentor research the question independently, then runs
// one synthesis pass over all three answers.
func (c *Council) Deliberate(ctx context.Context, question string, businessContext string) (*DeliberationResult, error) {
	responses := make([]*MentorResponse, len(c.mentors))
	errCh := make(chan error, len(c.mentors))

	var wg sync.WaitGroup
	for i, mentor := range c.mentors {
		wg.Add(1)
		go func(i int, mentor *MentorAgent) {
			defer wg.Done()
			resp, err := mentor.Research(ctx, question, c.evidenceK)
			if err != nil {
				errCh <- fmt.Errorf("mentor %s unavailable: %w", mentor.Persona().Name, err)
				return
			}
			responses[i] = resp
		}(i, mentor)
	}
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}

	synthesis, err := c.synthesize(ctx, question, businessContext, responses)
	if err != nil {
		return nil, fmt.Errorf("council synthesis: %w", err)
	}

	ordered := make([]MentorResponse, len(responses))
	for i, r := range responses {
		ordered[i] = *r
	}

	return &DeliberationResult{
		Question:        question,
		Synthesis:       synthesis,
		MentorResponses: ordered,
	}, nil
}

func (c *Council) synthesize(ctx context.Context, question, businessContext string, responses []*MentorResponse) (string, error) {
	if businessContext == "" {
		businessContext = DefaultBusinessContext
	}

	var sb strings.Builder
	sb.WriteString("You are coordinating a Marketing Council for GrowthBoss, a marketing agency. ")
	sb.WriteString("Three expert mentors have independently researched and answered the same question. ")
	sb.WriteString("Their responses are below.\n\n")
	sb.WriteString("Your task:\n")
	sb.WriteString("1. Identify where they agree (consensus points)\n")
	sb.WriteString("2. Identify where they differ or complement each other (unique perspectives)\n")
	sb.WriteString("3. Synthesize the BEST answer that combines their wisdom\n")
	sb.WriteString("4. Provide actionable recommendations specific to GrowthBoss\n\n")
	sb.WriteString(fmt.Sprintf("GrowthBoss Context: %s\n\n", businessContext))
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", question))
	for i, resp := range responses {
		sb.WriteString(c.mentors[i].Persona().SectionHeader)
		sb.WriteString("\n")
		sb.WriteString(resp.Answer)
		sb.WriteString("\n\n")
	}
	sb.WriteString("=== SYNTHESIS INSTRUCTIONS ===\n")
	sb.WriteString("Provide a structured synthesis:\n")
	sb.WriteString("1. **Executive Summary**: 2-3 sentence answer combining all perspectives\n")
	sb.WriteString("2. **Consensus Points**: Where all three mentors agree\n")
	sb.WriteString("3. **Unique Perspectives**: What each mentor adds that others don't\n")
	sb.WriteString("4. **GrowthBoss Recommendation**: Specific, actionable steps for GrowthBoss\n")
	sb.WriteString("5. **Implementation Priority**: Ranked list of next steps\n\n")
	sb.WriteString("Format the synthesis clearly and make it immediately actionable.")

	answer, err := c.provider.Generate(ctx, sb.String(), llm.WithTemperature(0.5))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
