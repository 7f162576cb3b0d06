package aurum

import (
	"context"

	"github.com/aurumkit/aurum/tokenstore"
)

// AuthGate is the pure predicate view/route guards use to decide whether
// protected content may render. It reads only the token store — no backend
// I/O and no local expiry validation; token expiry is discovered solely
// through a 401 from the backend.
type AuthGate struct {
	store tokenstore.Store
}

// NewAuthGate creates a gate over the given store.
func NewAuthGate(store tokenstore.Store) *AuthGate {
	return &AuthGate{store: store}
}

// Authorized reports whether an access token currently exists. A store read
// failure reports false: a guard that cannot see credentials must not render
// protected content.
func (g *AuthGate) Authorized(ctx context.Context) bool {
	if g == nil || g.store == nil {
		return false
	}
	sess, err := g.store.Load(ctx)
	return err == nil && sess != nil && sess.AccessToken != ""
}

// Role returns the stored account role, or "" when anonymous. Callers use it
// to gate optional functionality; the core itself never interprets it.
func (g *AuthGate) Role(ctx context.Context) Role {
	if g == nil || g.store == nil {
		return ""
	}
	sess, err := g.store.Load(ctx)
	if err != nil || sess == nil || sess.AccessToken == "" {
		return ""
	}
	return Role(sess.Role)
}
