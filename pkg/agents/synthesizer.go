package agents

import (
	"context"
	"fmt"
	"strings"

	"growthboss-ai-be/pkg/llm"
)

// Synthesizer turns a research summary into an actionable plan for the agency.
type Synthesizer struct {
	provider llm.LLMProvider
}

func NewSynthesizer(provider llm.LLMProvider) *Synthesizer {
	return &Synthesizer{provider: provider}
}

func (s *Synthesizer) Synthesize(ctx context.Context, question, researchAnswer, brandContext string) (string, error) {
	prompt := "You are a senior marketing strategist at GrowthBoss. Blend the research with our context to produce a clear, actionable plan. " +
		"Return structured output with sections: Objective, Core Insight, Strategy, Tactics, Content Plan, Offers, KPIs, Risks, Next Steps.\n\n" +
		fmt.Sprintf("GrowthBoss Context:\n%s\n\n", brandContext) +
		fmt.Sprintf("User Question:\n%s\n\n", question) +
		fmt.Sprintf("Research Summary:\n%s\n\n", researchAnswer) +
		"Now produce the plan:"

	answer, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("synthesize plan: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
