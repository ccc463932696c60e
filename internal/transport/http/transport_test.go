package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/testutil"
)

// recordingHandler captures every envelope delivered to it
type recordingHandler struct {
	envelopes []model.Envelope
}

func (h *recordingHandler) HandleEnvelope(_ context.Context, env model.Envelope) error {
	h.envelopes = append(h.envelopes, env)
	return nil
}

type TransportSuite struct {
	suite.Suite
	ctx context.Context
}

func TestTransportSuite(t *testing.T) {
	suite.Run(t, new(TransportSuite))
}

func (s *TransportSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *TransportSuite) newTransport(peers map[model.ShardID]string) (*Transport, *recordingHandler) {
	cfg := DefaultConfig()
	cfg.Peers = peers

	tr := New("shard-a", cfg, testutil.NopLogger())
	self := &recordingHandler{}
	tr.SetHandler(self)
	return tr, self
}

func (s *TransportSuite) TestSendPostsEnvelopeToPeer() {
	var received model.Envelope
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal(MessagePath, r.URL.Path)
		s.Equal("application/json", r.Header.Get("Content-Type"))
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	tr, self := s.newTransport(map[model.ShardID]string{"shard-b": server.URL})
	tr.Send(s.ctx, "shard-b", model.Message{
		Kind:             model.MessageGameFinished,
		Owner:            "shard-a",
		CandiesCollected: 7,
		IsNewRecord:      true,
	})

	s.Equal(model.ShardID("shard-b"), received.To)
	s.Equal(model.ShardID("shard-a"), received.From)
	s.False(received.Bounced)
	s.Equal(uint32(7), received.Message.CandiesCollected)
	s.Empty(self.envelopes)
}

func (s *TransportSuite) TestSendToUnknownPeerBounces() {
	tr, self := s.newTransport(nil)
	tr.Send(s.ctx, "shard-unknown", model.Message{Kind: model.MessageGameFinished})

	s.Require().Len(self.envelopes, 1)
	env := self.envelopes[0]
	s.True(env.Bounced)
	s.Equal(model.ShardID("shard-unknown"), env.To)
	s.Equal(model.ShardID("shard-a"), env.From)
}

func (s *TransportSuite) TestErrorResponseBounces() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	tr, self := s.newTransport(map[model.ShardID]string{"shard-b": server.URL})
	tr.Send(s.ctx, "shard-b", model.Message{Kind: model.MessageGameFinished})

	s.Require().Len(self.envelopes, 1)
	s.True(self.envelopes[0].Bounced)
}

func (s *TransportSuite) TestUnreachablePeerBounces() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before sending: connection refused

	tr, self := s.newTransport(map[model.ShardID]string{"shard-b": server.URL})
	tr.Send(s.ctx, "shard-b", model.Message{Kind: model.MessageGameFinished})

	s.Require().Len(self.envelopes, 1)
	s.True(self.envelopes[0].Bounced)
}

func (s *TransportSuite) TestBounceWithoutHandlerIsDropped() {
	cfg := DefaultConfig()
	tr := New("shard-a", cfg, testutil.NopLogger())

	// No handler set; the bounce has nowhere to land and is discarded
	tr.Send(s.ctx, "shard-unknown", model.Message{Kind: model.MessageGameFinished})
}
