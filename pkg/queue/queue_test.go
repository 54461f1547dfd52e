package queue_test

import (
	"testing"

	"github.com/yeisme/ecolevault/pkg/queue"
)

// TestWatermillMessageRoundTrip 信封经 watermill 消息往返后头部与负载保持一致.
func TestWatermillMessageRoundTrip(t *testing.T) {
	payload := queue.FileStoredPayload{
		FileID:  42,
		EcoleID: 7,
		Object: queue.ObjectRef{
			Bucket:      "ecolevault",
			ObjectKey:   "schools/7/files/report.pdf",
			Size:        2048,
			ContentType: "application/pdf",
		},
		FileName:   "report.pdf",
		FileType:   "pdf",
		UploadedBy: "alice",
	}

	msg, err := queue.NewWatermillMessage(queue.TopicFileStored, payload,
		queue.WithProducer("ecolevault"), queue.WithTraceID("trace-1"))
	if err != nil {
		t.Fatalf("build message: %v", err)
	}

	if msg.UUID == "" {
		t.Error("expected message UUID to be set")
	}

	if got := msg.Metadata.Get("topic"); got != queue.TopicFileStored {
		t.Errorf("metadata topic = %q, want %q", got, queue.TopicFileStored)
	}

	if got := msg.Metadata.Get("trace_id"); got != "trace-1" {
		t.Errorf("metadata trace_id = %q", got)
	}

	env, err := queue.ParseWatermillMessage[queue.FileStoredPayload](msg)
	if err != nil {
		t.Fatalf("parse message: %v", err)
	}

	if env.Header.Topic != queue.TopicFileStored {
		t.Errorf("header topic = %q, want %q", env.Header.Topic, queue.TopicFileStored)
	}

	if env.Header.Producer != "ecolevault" || env.Header.Version != queue.PayloadVersionV1 {
		t.Errorf("header = %+v", env.Header)
	}

	if env.Header.OccurredAt.IsZero() {
		t.Error("expected occurred_at to be set")
	}

	if env.Payload != payload {
		t.Errorf("payload = %+v, want %+v", env.Payload, payload)
	}
}

// TestDecodeIgnoresUnknownFields 消费端对未知字段保持兼容.
func TestDecodeIgnoresUnknownFields(t *testing.T) {
	raw := []byte(`{
		"header": {"topic": "ev.ecole.created", "occurred_at": "2025-01-02T03:04:05Z", "version": "v1", "future_field": true},
		"payload": {"ecole_id": 9, "name": "Ecole Pilote", "extra": "ignored"}
	}`)

	env, err := queue.Decode[queue.EcoleCreatedPayload](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if env.Payload.EcoleID != 9 || env.Payload.Name != "Ecole Pilote" {
		t.Errorf("payload = %+v", env.Payload)
	}
}
