// Package memory provides in-process repositories used when no database is
// configured and by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peerprep/backend/internal/domain"
	"github.com/peerprep/backend/internal/repository"
)

// UserRepository is a map-backed repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository returns an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.conflict(user); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.conflict(user); err != nil {
		return err
	}
	user.UpdatedAt = time.Now().UTC()
	stored := *user
	// the role flag only changes through SetAdmin
	stored.IsAdmin = existing.IsAdmin
	r.users[user.ID] = &stored
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *UserRepository) GetIdentityByID(ctx context.Context, id string) (*domain.Identity, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}

func (r *UserRepository) ListIdentities(_ context.Context) ([]domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identities := make([]domain.Identity, 0, len(r.users))
	for _, user := range r.users {
		identities = append(identities, *user.Identity())
	}
	sort.Slice(identities, func(i, j int) bool {
		if identities[i].CreatedAt.Equal(identities[j].CreatedAt) {
			return identities[i].ID < identities[j].ID
		}
		return identities[i].CreatedAt.Before(identities[j].CreatedAt)
	})
	return identities, nil
}

func (r *UserRepository) SetAdmin(_ context.Context, id string, isAdmin bool) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.IsAdmin = isAdmin
	user.UpdatedAt = time.Now().UTC()
	return user.Identity(), nil
}

func (r *UserRepository) IncrementFailedLogins(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	user.FailedLoginAttempts++
	return user.FailedLoginAttempts, nil
}

func (r *UserRepository) ResetFailedLogins(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.FailedLoginAttempts = 0
	}
	return nil
}

func (r *UserRepository) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) conflict(user *domain.User) error {
	for _, existing := range r.users {
		if existing.ID == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return repository.ErrUsernameTaken
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrEmailTaken
		}
	}
	return nil
}
