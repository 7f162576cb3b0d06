package aurum

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aurumkit/aurum/tokenstore"
)

// failingStore always errors, modeling a store outage.
type failingStore struct{}

func (failingStore) Load(context.Context) (*tokenstore.Session, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) Save(context.Context, *tokenstore.Session) error {
	return errors.New("connection refused")
}
func (failingStore) SetAccessToken(context.Context, string) error {
	return errors.New("connection refused")
}
func (failingStore) Clear(context.Context) error {
	return errors.New("connection refused")
}

func TestAuthGate(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	gate := NewAuthGate(store)

	assert.False(t, gate.Authorized(ctx))
	assert.Equal(t, Role(""), gate.Role(ctx))

	seedSession(t, store, "abc", "xyz")
	assert.True(t, gate.Authorized(ctx))
	assert.Equal(t, RoleBuyer, gate.Role(ctx))

	assert.NoError(t, store.Clear(ctx))
	assert.False(t, gate.Authorized(ctx))
}

func TestAuthGateStoreOutageDenies(t *testing.T) {
	gate := NewAuthGate(failingStore{})
	assert.False(t, gate.Authorized(context.Background()))
	assert.Equal(t, Role(""), gate.Role(context.Background()))
}

func TestAuthGateNilSafe(t *testing.T) {
	var gate *AuthGate
	assert.False(t, gate.Authorized(context.Background()))
}
