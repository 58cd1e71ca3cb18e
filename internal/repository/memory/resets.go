package memory

import (
	"context"
	"sync"
	"time"

	"github.com/peerprep/backend/internal/repository"
)

type resetEntry struct {
	userID    string
	expiresAt time.Time
}

// PasswordResetRepository is a map-backed repository.PasswordResetRepository.
type PasswordResetRepository struct {
	mu      sync.Mutex
	entries map[string]resetEntry
	now     func() time.Time
}

var _ repository.PasswordResetRepository = (*PasswordResetRepository)(nil)

// NewPasswordResetRepository returns an empty repository.
func NewPasswordResetRepository() *PasswordResetRepository {
	return &PasswordResetRepository{entries: make(map[string]resetEntry), now: time.Now}
}

func (r *PasswordResetRepository) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[token] = resetEntry{userID: userID, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *PasswordResetRepository) Consume(_ context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[token]
	if !ok {
		return "", repository.ErrNotFound
	}
	delete(r.entries, token)
	if !r.now().Before(entry.expiresAt) {
		return "", repository.ErrNotFound
	}
	return entry.userID, nil
}
