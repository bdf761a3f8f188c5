package amqp

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStatementSyncMessageRoundTrip(t *testing.T) {
	msg := NewStatementSyncMessage("stmt-123")
	if msg.StatementID != "stmt-123" {
		t.Fatalf("unexpected statement ID: %s", msg.StatementID)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp should be set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := StatementSyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.StatementID != msg.StatementID {
		t.Fatalf("statement ID lost: %s", back.StatementID)
	}
	if !back.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("timestamp lost: %s vs %s", back.Timestamp, msg.Timestamp)
	}
}

func TestStatementSyncMessageJSONShape(t *testing.T) {
	msg := &StatementSyncMessage{StatementID: "abc", Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["statement_id"] != "abc" {
		t.Fatalf("unexpected payload: %v", decoded)
	}
}

func TestStatementSyncMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := StatementSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestNewClientBadURL(t *testing.T) {
	if _, err := NewClient("not-a-url", "ex", "q"); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}
