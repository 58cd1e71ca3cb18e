package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const passwordResetKeyPrefix = "peerprep:password-reset:"

// PasswordResetRepository stores single-use reset tokens.
type PasswordResetRepository interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Consume returns the user id bound to token and deletes it. Unknown or
	// expired tokens yield ErrNotFound.
	Consume(ctx context.Context, token string) (string, error)
}

type passwordResetRepository struct {
	client *redis.Client
}

// NewPasswordResetRepository constructs a Redis-backed repository.
func NewPasswordResetRepository(client *redis.Client) PasswordResetRepository {
	return &passwordResetRepository{client: client}
}

func (r *passwordResetRepository) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return r.client.Set(ctx, passwordResetKeyPrefix+token, userID, ttl).Err()
}

func (r *passwordResetRepository) Consume(ctx context.Context, token string) (string, error) {
	userID, err := r.client.GetDel(ctx, passwordResetKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
