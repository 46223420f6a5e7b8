package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type failingPublisher struct{}

func (failingPublisher) Publish(topic string, messages ...*message.Message) error {
	return errors.New("bus closed")
}

func (failingPublisher) Close() error { return nil }

func TestRecordPublishesQueryTelemetry(t *testing.T) {
	pubSub := NewPubSub()
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, TopicQueryTracked)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	tracker := NewTracker(pubSub, nopLogger{})
	tracker.Record("how to price?", 340*time.Millisecond, 7, "sess-42")

	select {
	case msg := <-messages:
		msg.Ack()
		var got QueryTrackedMessage
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("payload is not valid JSON: %v", err)
		}
		if got.Query != "how to price?" {
			t.Errorf("query = %q, want %q", got.Query, "how to price?")
		}
		if got.LatencyMs != 340 {
			t.Errorf("latency = %d, want 340", got.LatencyMs)
		}
		if got.ResultCount != 7 {
			t.Errorf("result count = %d, want 7", got.ResultCount)
		}
		if got.SessionID != "sess-42" {
			t.Errorf("session id = %q, want sess-42", got.SessionID)
		}
	case <-ctx.Done():
		t.Fatal("no telemetry message arrived on the bus")
	}
}

func TestRecordSwallowsPublishFailure(t *testing.T) {
	tracker := NewTracker(failingPublisher{}, nopLogger{})

	// Must not panic or block; telemetry is best-effort.
	tracker.Record("q", time.Millisecond, 0, "")
}
