package mocks

import (
	"context"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/transport"
)

// SentMessage records one Send call on a MockTransport
type SentMessage struct {
	To      model.ShardID
	Message model.Message
}

// MockTransport records outbound messages for assertions instead of
// delivering them
type MockTransport struct {
	Sent []SentMessage
}

// Ensure MockTransport implements Transport
var _ transport.Transport = (*MockTransport)(nil)

// NewMockTransport creates an empty MockTransport
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Send records the message
func (t *MockTransport) Send(_ context.Context, to model.ShardID, msg model.Message) {
	t.Sent = append(t.Sent, SentMessage{To: to, Message: msg})
}

// SentTo returns every message recorded for the given destination
func (t *MockTransport) SentTo(id model.ShardID) []model.Message {
	var msgs []model.Message
	for _, s := range t.Sent {
		if s.To == id {
			msgs = append(msgs, s.Message)
		}
	}
	return msgs
}

// Reset clears the recorded messages
func (t *MockTransport) Reset() {
	t.Sent = nil
}
