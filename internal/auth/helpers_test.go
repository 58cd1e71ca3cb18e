package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/peerprep/backend/internal/domain"
	"github.com/peerprep/backend/internal/repository"
)

const testSecret = "test-secret"

type fakeIdentityStore struct {
	mu         sync.Mutex
	identities map[string]*domain.Identity
	err        error
	panicWith  any
	calls      int
}

func newFakeIdentityStore(identities ...*domain.Identity) *fakeIdentityStore {
	store := &fakeIdentityStore{identities: make(map[string]*domain.Identity)}
	for _, identity := range identities {
		store.identities[identity.ID] = identity
	}
	return store
}

func (s *fakeIdentityStore) GetIdentityByID(_ context.Context, id string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	if s.err != nil {
		return nil, s.err
	}
	identity, ok := s.identities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *identity
	return &copied, nil
}

func (s *fakeIdentityStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newIdentity(isAdmin bool) *domain.Identity {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Identity{
		ID:        uuid.NewString(),
		Username:  gofakeit.Username(),
		Email:     gofakeit.Email(),
		IsAdmin:   isAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
