// Package analytics publishes query telemetry onto the in-process event bus
// and defines the message format the consumer persists.
package analytics

import (
	"encoding/json"
	"time"

	"growthboss-ai-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicQueryTracked is the bus topic carrying QueryTrackedMessage payloads.
const TopicQueryTracked = "analytics.query_tracked"

// QueryTrackedMessage is the telemetry record for one retrieval query.
type QueryTrackedMessage struct {
	Query       string `json:"query"`
	LatencyMs   int64  `json:"latency_ms"`
	ResultCount int    `json:"result_count"`
	SessionID   string `json:"session_id,omitempty"`
}

// Tracker records query telemetry. Publishing is best-effort: failures are
// logged and swallowed so the answer path is never affected.
type Tracker struct {
	publisher message.Publisher
	log       logger.ILogger
}

func NewTracker(publisher message.Publisher, log logger.ILogger) *Tracker {
	return &Tracker{
		publisher: publisher,
		log:       log,
	}
}

func (t *Tracker) Record(query string, latency time.Duration, resultCount int, sessionID string) {
	payload, err := json.Marshal(QueryTrackedMessage{
		Query:       query,
		LatencyMs:   latency.Milliseconds(),
		ResultCount: resultCount,
		SessionID:   sessionID,
	})
	if err != nil {
		t.log.Warn("analytics", "failed to marshal query telemetry", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := t.publisher.Publish(TopicQueryTracked, msg); err != nil {
		t.log.Warn("analytics", "failed to publish query telemetry", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// NewPubSub builds the in-process event bus shared by tracker and consumer.
func NewPubSub() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
}
