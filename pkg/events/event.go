package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ANSWER_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published by the answer paths.
const (
	TypeAnswerCompleted  = "ANSWER_COMPLETED"
	TypeCouncilCompleted = "COUNCIL_COMPLETED"
	TypeBriefCompleted   = "BRIEF_COMPLETED"
)

// NewAnswerCompleted builds the event emitted after a researcher answer.
func NewAnswerCompleted(sessionID, question string, resultCount int) Event {
	return BaseEvent{
		Type: TypeAnswerCompleted,
		Data: map[string]interface{}{
			"session_id":   sessionID,
			"question":     question,
			"result_count": resultCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewCouncilCompleted builds the event emitted after a council deliberation.
func NewCouncilCompleted(question string, mentors []string) Event {
	return BaseEvent{
		Type: TypeCouncilCompleted,
		Data: map[string]interface{}{
			"question": question,
			"mentors":  mentors,
		},
		OccurredAt: time.Now(),
	}
}

// NewBriefCompleted builds the event emitted after a full brief pipeline run.
func NewBriefCompleted(question string) Event {
	return BaseEvent{
		Type: TypeBriefCompleted,
		Data: map[string]interface{}{
			"question": question,
		},
		OccurredAt: time.Now(),
	}
}
