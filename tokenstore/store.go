package tokenstore

import (
	"context"
	"errors"
)

// ErrNoSession is returned by [Store.SetAccessToken] when no session exists.
// Rotating the access token of an empty store would create partial state.
var ErrNoSession = errors.New("tokenstore: no session")

// ErrUnavailable is returned when the backing store cannot be reached.
var ErrUnavailable = errors.New("tokenstore: store unavailable")

// Session is the persisted authenticated identity of the client. All fields
// are opaque to this package; CreatedAt is carried as the backend sent it.
type Session struct {
	AccessToken  string
	RefreshToken string
	Role         string
	Email        string
	Username     string
	CreatedAt    string
}

// Clone returns a deep copy of the session, or nil for a nil receiver.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Store is the persistence contract for session state. Implementations must
// apply Save and Clear as whole-session operations: a concurrent Load never
// observes a mix of two writes or a partially cleared session.
type Store interface {
	// Load returns the current session, or (nil, nil) when none is stored.
	Load(ctx context.Context) (*Session, error)

	// Save replaces the stored session with sess in one operation.
	Save(ctx context.Context, sess *Session) error

	// SetAccessToken replaces only the access token of the existing session.
	// Returns ErrNoSession when no session is stored.
	SetAccessToken(ctx context.Context, token string) error

	// Clear removes every session field in one operation. Clearing an empty
	// store is a no-op.
	Clear(ctx context.Context) error
}
