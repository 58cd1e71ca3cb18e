package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerprep/backend/internal/domain"
	"github.com/peerprep/backend/internal/repository"
)

func TestUserRepository_UniqueFields(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "alice", Email: "alice@example.com"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{Username: "alice", Email: "other@example.com"}), repository.ErrUsernameTaken)
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{Username: "bob", Email: "ALICE@example.com"}), repository.ErrEmailTaken)
}

func TestUserRepository_IdentityHasNoHash(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	user := &domain.User{Username: "carol", Email: "carol@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	identity, err := repo.GetIdentityByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", identity.Username)

	_, err = repo.GetIdentityByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_UpdateKeepsRoleFlag(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	user := &domain.User{Username: "dave", Email: "dave@example.com"}
	require.NoError(t, repo.Create(ctx, user))
	_, err := repo.SetAdmin(ctx, user.ID, true)
	require.NoError(t, err)

	user.IsAdmin = false
	user.Username = "david"
	require.NoError(t, repo.Update(ctx, user))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)
	assert.Equal(t, "david", stored.Username)
}

func TestQuestionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository()

	first := &domain.Question{Title: "Two Sum", Difficulty: domain.DifficultyEasy}
	second := &domain.Question{Title: "LRU Cache", Difficulty: domain.DifficultyHard}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.ErrorIs(t, repo.Create(ctx, &domain.Question{Title: "Two Sum"}), repository.ErrTitleTaken)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)

	second.Title = "Two Sum"
	assert.ErrorIs(t, repo.Update(ctx, second), repository.ErrTitleTaken)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), repository.ErrNotFound)
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPasswordResetRepository_ConsumeOnceAndExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewPasswordResetRepository()
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Save(ctx, "a", "user-1", time.Minute))
	require.NoError(t, repo.Save(ctx, "b", "user-2", time.Minute))

	userID, err := repo.Consume(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	_, err = repo.Consume(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	now = now.Add(2 * time.Minute)
	_, err = repo.Consume(ctx, "b")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestQuestionRepository_UpdateWithoutTopicsKeepsStored(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestionRepository()
	q := &domain.Question{Title: "Climbing Stairs", Topics: []string{"Dynamic Programming"}}
	require.NoError(t, repo.Create(ctx, q))

	require.NoError(t, repo.Update(ctx, &domain.Question{ID: q.ID, Title: "Climbing Stairs"}))
	stored, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dynamic Programming"}, stored.Topics)
}
