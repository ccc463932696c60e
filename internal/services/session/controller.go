package session

import (
	"context"
	"log/slog"

	"github.com/Dima4663737373/MicroSlither.io/internal/dependencies/clock"
	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/player"
	"github.com/Dima4663737373/MicroSlither.io/internal/services/role"
	"github.com/Dima4663737373/MicroSlither.io/internal/storage"
	"github.com/Dima4663737373/MicroSlither.io/internal/transport"
)

// Controller manages the lifecycle of this shard's game sessions. A session
// moves Playing -> Finished exactly once; history is append-only and only
// the "current" pointer ever moves. Gameplay events are reported to the
// authority shard fire-and-forget, with no acknowledgement awaited.
type Controller struct {
	storage   storage.Storage
	roles     *role.Service
	players   *player.Service
	transport transport.Transport
	clock     clock.Clock
	logger    *slog.Logger
}

// NewController creates a new session controller
func NewController(
	storage storage.Storage,
	roles *role.Service,
	players *player.Service,
	transport transport.Transport,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		roles:     roles,
		players:   players,
		transport: transport,
		clock:     clock,
		logger:    logger,
	}
}

// Start begins a new session and makes it current. Starting supersedes
// tracking of any previous current session but never deletes it.
func (c *Controller) Start(ctx context.Context) (*model.GameSession, error) {
	counter, err := c.storage.NextSessionCounter(ctx)
	if err != nil {
		return nil, err
	}

	name, err := c.storage.GetLocalPlayerName(ctx)
	if err != nil {
		return nil, err
	}

	owner := c.roles.LocalShard()
	session := &model.GameSession{
		ID:         model.NewSessionID(owner, counter),
		Owner:      owner,
		PlayerName: name,
		StartTime:  clock.Micros(c.clock.Now()),
		State:      model.SessionStatePlaying,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	if err := c.storage.SetCurrentSessionID(ctx, session.ID); err != nil {
		return nil, err
	}

	c.logger.Info("game session started",
		slog.String("session_id", string(session.ID)),
	)

	return session, nil
}

// CollectCandy increments the current session's candy count and notifies the
// authority shard. Fails with ErrNoActiveSession when no session is current.
func (c *Controller) CollectCandy(ctx context.Context) (*model.GameSession, error) {
	session, err := c.current(ctx)
	if err != nil {
		return nil, err
	}

	session.CandiesCollected++
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.notifyAuthority(ctx, model.Message{
		Kind:      model.MessageCandyCollected,
		SessionID: session.ID,
		Owner:     session.Owner,
	})

	return session, nil
}

// End finishes the current session. The record check compares against the
// cached personal best before the game is folded into local stats; only
// record games are reported upstream, which is what keeps the authority's
// aggregate duplicate-free.
func (c *Controller) End(ctx context.Context) (*model.GameSession, error) {
	session, err := c.current(ctx)
	if err != nil {
		return nil, err
	}

	isRecord, err := c.players.IsRecord(ctx, session.CandiesCollected)
	if err != nil {
		return nil, err
	}

	now := clock.Micros(c.clock.Now())
	session.EndTime = now
	session.IsRecord = isRecord
	session.State = model.SessionStateFinished

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	if isRecord {
		c.notifyAuthority(ctx, model.Message{
			Kind:             model.MessageGameFinished,
			SessionID:        session.ID,
			Owner:            session.Owner,
			CandiesCollected: session.CandiesCollected,
			IsNewRecord:      true,
		})
	} else {
		c.logger.Info("game ended without a new record, skipping leaderboard report",
			slog.String("session_id", string(session.ID)),
			slog.Uint64("candies", uint64(session.CandiesCollected)),
		)
	}

	if err := c.players.RecordGame(ctx, session.CandiesCollected, now); err != nil {
		return nil, err
	}

	if err := c.storage.SetCurrentSessionID(ctx, ""); err != nil {
		return nil, err
	}

	c.logger.Info("game session ended",
		slog.String("session_id", string(session.ID)),
		slog.Uint64("candies", uint64(session.CandiesCollected)),
		slog.Bool("is_record", isRecord),
	)

	return session, nil
}

// Session retrieves a session from this shard's history by ID
func (c *Controller) Session(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	return c.storage.GetSession(ctx, id)
}

// CurrentSession returns the session in progress, or ErrNoActiveSession
func (c *Controller) CurrentSession(ctx context.Context) (*model.GameSession, error) {
	return c.current(ctx)
}

// Sessions returns this shard's full session history, oldest first
func (c *Controller) Sessions(ctx context.Context) ([]*model.GameSession, error) {
	return c.storage.ListSessions(ctx)
}

func (c *Controller) current(ctx context.Context) (*model.GameSession, error) {
	id, err := c.storage.GetCurrentSessionID(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, model.ErrNoActiveSession
	}
	return c.storage.GetSession(ctx, id)
}

// notifyAuthority sends a gameplay event to the configured authority shard.
// An unconfigured shard logs and drops the event rather than failing the
// local operation.
func (c *Controller) notifyAuthority(ctx context.Context, msg model.Message) {
	r, err := c.roles.Role(ctx)
	if err != nil || !r.Configured() {
		c.logger.Warn("no authority shard configured, event not sent",
			slog.String("kind", string(msg.Kind)),
		)
		return
	}

	c.transport.Send(ctx, r.AuthorityShardID, msg)
}
