// internal/assistant/session.go
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"simmer-assistant/internal/common/errors"
	"simmer-assistant/internal/common/logger"
	"simmer-assistant/internal/models"
)

// SessionState is the widget lifecycle: the chat starts collapsed, may fire
// one proactive nudge after a quiet period, and becomes expanded once the
// user engages. Transitions only move forward.
type SessionState string

const (
	StateCollapsed SessionState = "collapsed"
	StateProactive SessionState = "proactive"
	StateExpanded  SessionState = "expanded"
)

// Session is one visitor conversation with one assistant.
type Session struct {
	ID            string           `json:"id"`
	Assistant     string           `json:"assistant"`
	State         SessionState     `json:"state"`
	Language      string           `json:"language,omitempty"`
	LocationID    string           `json:"locationId,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	Transcript    []models.Message `json:"transcript"`
	ProactiveSent bool             `json:"proactiveSent"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastSeenAt    time.Time        `json:"lastSeenAt"`
}

// SessionStore persists sessions in redis with a sliding TTL. Each write
// re-arms the expiry so an active conversation never dies mid-chat.
type SessionStore struct {
	client         *redis.Client
	ttl            time.Duration
	proactiveDelay time.Duration
	logger         logger.Logger
}

// NewSessionStore wires a session store.
func NewSessionStore(client *redis.Client, ttl, proactiveDelay time.Duration, log logger.Logger) *SessionStore {
	return &SessionStore{
		client:         client,
		ttl:            ttl,
		proactiveDelay: proactiveDelay,
		logger:         log,
	}
}

func sessionKey(assistant, id string) string {
	return fmt.Sprintf("session:%s:%s", assistant, id)
}

// Create starts a new collapsed session and persists it.
func (s *SessionStore) Create(ctx context.Context, assistant string) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:         uuid.NewString(),
		Assistant:  assistant,
		State:      StateCollapsed,
		Transcript: []models.Message{},
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by id. A missing or expired session returns
// SESSION_NOT_FOUND so the handler can mint a fresh one.
func (s *SessionStore) Get(ctx context.Context, assistant, id string) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(assistant, id)).Bytes()
	if err == redis.Nil {
		return nil, errors.NewSessionNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewSessionStoreFailedError(fmt.Errorf("get: %w", err))
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, errors.NewSessionStoreFailedError(fmt.Errorf("decode: %w", err))
	}
	return &sess, nil
}

// GetOrCreate resolves id to an existing session or mints a new one. The
// returned bool reports whether the session is new.
func (s *SessionStore) GetOrCreate(ctx context.Context, assistant, id string) (*Session, bool, error) {
	if id != "" {
		sess, err := s.Get(ctx, assistant, id)
		if err == nil {
			return sess, false, nil
		}
		if stdErr, ok := err.(*errors.StandardError); !ok || stdErr.Code != errors.ErrCodeSessionNotFound {
			return nil, false, err
		}
	}
	sess, err := s.Create(ctx, assistant)
	return sess, true, err
}

// Append records a user/assistant exchange, marks the session expanded, and
// persists. User engagement always wins over the proactive nudge.
func (s *SessionStore) Append(ctx context.Context, sess *Session, userText string, reply Reply) error {
	now := time.Now().UTC()
	sess.Transcript = append(sess.Transcript,
		models.Message{Role: models.RoleUser, Text: userText, Timestamp: now},
		models.Message{Role: models.RoleAssistant, Text: reply.Text, Timestamp: now, SuggestedItems: reply.SuggestedItems, Actions: reply.Actions},
	)
	sess.State = StateExpanded
	sess.LastSeenAt = now
	return s.save(ctx, sess)
}

// MaybeProactive transitions a collapsed session to proactive if the nudge
// delay has elapsed and the nudge has not fired yet. It returns the nudge text
// to show, or "" when nothing should happen. The nudge fires at most once per
// session and never after the user has engaged.
func (s *SessionStore) MaybeProactive(ctx context.Context, sess *Session, profile *Profile, language string) (string, error) {
	if sess.State != StateCollapsed || sess.ProactiveSent {
		return "", nil
	}
	if time.Since(sess.CreatedAt) < s.proactiveDelay {
		return "", nil
	}

	text := profile.Greeting(language, 0)
	sess.State = StateProactive
	sess.ProactiveSent = true
	sess.Transcript = append(sess.Transcript, models.Message{
		Role:      models.RoleAssistant,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
	if err := s.save(ctx, sess); err != nil {
		return "", err
	}
	return text, nil
}

func (s *SessionStore) save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return errors.NewSessionStoreFailedError(fmt.Errorf("encode: %w", err))
	}
	if err := s.client.Set(ctx, sessionKey(sess.Assistant, sess.ID), raw, s.ttl).Err(); err != nil {
		return errors.NewSessionStoreFailedError(fmt.Errorf("set: %w", err))
	}
	return nil
}
