package dto

import "github.com/google/uuid"

// SourceRef is one caller-facing evidence citation.
type SourceRef struct {
	Title  string `json:"title"`
	Domain string `json:"domain"`
}

type AskRequest struct {
	Question  string     `json:"question" validate:"required"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
	K         int        `json:"k,omitempty" validate:"omitempty,min=1,max=50"`
}

type AskResponse struct {
	Answer    string      `json:"answer"`
	Sources   []SourceRef `json:"sources"`
	SessionId uuid.UUID   `json:"session_id"`
}

type CouncilRequest struct {
	Question         string `json:"question" validate:"required"`
	Context          string `json:"context,omitempty"`
	ShowDeliberation bool   `json:"show_deliberation,omitempty"`
}

type MentorAnswerDTO struct {
	Mentor string `json:"mentor"`
	Answer string `json:"answer"`
}

type CouncilResponse struct {
	Synthesis    string            `json:"synthesis"`
	Mentors      []string          `json:"mentors"`
	Deliberation []MentorAnswerDTO `json:"deliberation,omitempty"`
}

type BriefRequest struct {
	Question  string     `json:"question" validate:"required"`
	Context   string     `json:"context,omitempty"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
}

type BriefResponse struct {
	ResearchSummary string      `json:"research_summary"`
	Plan            string      `json:"plan"`
	ImprovedPlan    string      `json:"improved_plan"`
	Sources         []SourceRef `json:"sources"`
	SessionId       uuid.UUID   `json:"session_id"`
}

type MetricsResponse struct {
	TotalQueries   int64   `json:"total_queries"`
	AvgLatencyMs   float64 `json:"avg_latency_ms"`
	KnowledgeGaps  int64   `json:"knowledge_gaps"`
	SlowQueries    int64   `json:"slow_queries"`
	ActiveSessions int64   `json:"active_sessions"`
}
