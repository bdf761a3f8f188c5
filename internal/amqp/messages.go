package amqp

import (
	"encoding/json"
	"time"
)

// StatementSyncMessage asks the worker to export one statement.
// It carries only the ID; the worker fetches the full statement from
// the database so the payload stays small and replay-safe.
type StatementSyncMessage struct {
	StatementID string    `json:"statement_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewStatementSyncMessage creates a sync message for the given statement.
func NewStatementSyncMessage(statementID string) *StatementSyncMessage {
	return &StatementSyncMessage{
		StatementID: statementID,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *StatementSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// StatementSyncMessageFromJSON creates a message from JSON bytes
func StatementSyncMessageFromJSON(data []byte) (*StatementSyncMessage, error) {
	var msg StatementSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
