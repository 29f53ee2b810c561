package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session ID is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session holds the per-client state that must survive the OAuth redirect
// round trip: where to send the user afterwards, and nothing else.
type Session struct {
	ID        string
	ReturnURL string
	ErrorURL  string
	CreatedAt time.Time
}

// Store is the contract for session persistence. Sessions are short-lived
// (one redirect round trip) so the memory implementation is the only one
// in the tree, but handlers depend on the interface.
type Store interface {
	Create(ctx context.Context) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Put(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}
