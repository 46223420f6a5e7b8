package agents

import (
	"context"
	"fmt"
	"strings"

	"growthboss-ai-be/pkg/llm"
)

// Critic reviews a plan and returns an improved version.
type Critic struct {
	provider llm.LLMProvider
}

func NewCritic(provider llm.LLMProvider) *Critic {
	return &Critic{provider: provider}
}

func (c *Critic) Critique(ctx context.Context, planText string) (string, error) {
	prompt := "You are a rigorous marketing operator. Critique the plan. " +
		"Identify assumptions, missing steps, measurability, capacity constraints, and potential improvements. " +
		"Return an improved version preserving structure with explicit timelines and numeric KPIs where possible.\n\n" +
		fmt.Sprintf("Plan to critique:\n%s\n\nImproved Plan:", planText)

	answer, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return "", fmt.Errorf("critique plan: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
