package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/peerprep/backend/internal/domain"
	"github.com/peerprep/backend/internal/repository"
)

var (
	// ErrUserNotFound means the token subject has no user record.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreUnavailable means the lookup itself failed; the user may still exist.
	ErrStoreUnavailable = errors.New("identity store unavailable")
)

// SessionResolver maps verified claims onto a stored identity.
type SessionResolver struct {
	store repository.IdentityStore
}

// NewSessionResolver constructs a resolver backed by store.
func NewSessionResolver(store repository.IdentityStore) *SessionResolver {
	return &SessionResolver{store: store}
}

// Resolve loads the identity named by claims. The store projection excludes
// the password hash.
func (r *SessionResolver) Resolve(ctx context.Context, claims *Claims) (*domain.Identity, error) {
	if claims == nil || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	// ids are uuids; anything else cannot name a stored user
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrUserNotFound
	}

	identity, err := r.store.GetIdentityByID(ctx, claims.UserID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	case identity == nil:
		return nil, ErrUserNotFound
	}
	return identity, nil
}
