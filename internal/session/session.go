package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mobimama/mobimama-api/internal/model"
)

// ErrNotFound is returned when a session id has no live record, either
// because it expired or because logout invalidated it.
var ErrNotFound = errors.New("session not found")

// Session is the per-login state record. Language lives here so a chosen
// language survives across requests.
type Session struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Username  string     `json:"username"`
	Role      model.Role `json:"role"`
	Language  string     `json:"language"`
	CreatedAt time.Time  `json:"created_at"`
}

// Actor returns the actor this session authenticates.
func (s *Session) Actor() model.Actor {
	return model.AuthenticatedActor(s.UserID, s.Username, s.Role)
}

// Store persists sessions with a TTL.
type Store interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}
