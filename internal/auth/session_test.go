package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerprep/backend/internal/auth"
	"github.com/peerprep/backend/internal/repository"
)

func TestSessionResolver_Resolve(t *testing.T) {
	identity := newIdentity(false)
	store := newFakeIdentityStore(identity)
	resolver := auth.NewSessionResolver(store)

	got, err := resolver.Resolve(context.Background(), &auth.Claims{UserID: identity.ID})
	require.NoError(t, err)
	assert.Equal(t, identity, got)
	assert.Equal(t, 1, store.Calls())
}

func TestSessionResolver_UnknownUser(t *testing.T) {
	store := newFakeIdentityStore()
	resolver := auth.NewSessionResolver(store)

	got, err := resolver.Resolve(context.Background(), &auth.Claims{UserID: uuid.NewString()})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
	assert.NotErrorIs(t, err, auth.ErrStoreUnavailable)
}

func TestSessionResolver_MalformedIDSkipsStore(t *testing.T) {
	store := newFakeIdentityStore()
	resolver := auth.NewSessionResolver(store)

	_, err := resolver.Resolve(context.Background(), &auth.Claims{UserID: "507f1f77bcf86cd799439011"})
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
	assert.Zero(t, store.Calls())
}

func TestSessionResolver_StoreFailureIsNotNotFound(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	store := newFakeIdentityStore()
	store.err = cause
	resolver := auth.NewSessionResolver(store)

	_, err := resolver.Resolve(context.Background(), &auth.Claims{UserID: uuid.NewString()})
	assert.ErrorIs(t, err, auth.ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, auth.ErrUserNotFound)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionResolver_ContextCancelled(t *testing.T) {
	store := newFakeIdentityStore()
	store.err = context.Canceled
	resolver := auth.NewSessionResolver(store)

	_, err := resolver.Resolve(context.Background(), &auth.Claims{UserID: uuid.NewString()})
	assert.ErrorIs(t, err, auth.ErrStoreUnavailable)
}

func TestSessionResolver_MissingClaims(t *testing.T) {
	resolver := auth.NewSessionResolver(newFakeIdentityStore())

	_, err := resolver.Resolve(context.Background(), nil)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
