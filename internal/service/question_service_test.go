package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerprep/backend/internal/domain"
	"github.com/peerprep/backend/internal/events"
	"github.com/peerprep/backend/internal/repository/memory"
	"github.com/peerprep/backend/internal/service"
)

func newQuestion(title string, topics ...string) domain.Question {
	return domain.Question{
		Title:       title,
		Description: "Solve " + title,
		Difficulty:  domain.DifficultyMedium,
		Topics:      topics,
	}
}

func TestParseQuestionID(t *testing.T) {
	id, err := service.ParseQuestionID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"abc", "", "-1", "0", "1.5"} {
		_, err := service.ParseQuestionID(raw)
		assert.ErrorIs(t, err, service.ErrInvalidQuestionID, raw)
	}
}

func TestQuestionService_CRUD(t *testing.T) {
	ctx := context.Background()
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.EventType
	for _, eventType := range []events.EventType{events.EventQuestionCreated, events.EventQuestionUpdated, events.EventQuestionDeleted} {
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			published = append(published, e.Type)
			return nil
		})
	}
	svc := service.NewQuestionService(memory.NewQuestionRepository(), dispatcher, nil)

	created, err := svc.Create(ctx, "admin", newQuestion("Two Sum", "Arrays", "Hash Table"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Arrays", "Hash Table"}, got.Topics)

	updated, err := svc.Update(ctx, "admin", created.ID, newQuestion("Two Sum II", "Arrays"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Two Sum II", updated.Title)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "admin", created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrQuestionNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "admin", created.ID), service.ErrQuestionNotFound)

	_, err = svc.Update(ctx, "admin", created.ID, newQuestion("Gone"))
	assert.ErrorIs(t, err, service.ErrQuestionNotFound)

	assert.Equal(t, []events.EventType{
		events.EventQuestionCreated,
		events.EventQuestionUpdated,
		events.EventQuestionDeleted,
	}, published)
}

func TestQuestionService_InvalidTopics(t *testing.T) {
	svc := service.NewQuestionService(memory.NewQuestionRepository(), nil, nil)

	_, err := svc.Create(context.Background(), "admin", newQuestion("Graph Walk", "Graphs", "Cooking", "Arrays", "Juggling"))
	var topicsErr *service.InvalidTopicsError
	require.ErrorAs(t, err, &topicsErr)
	assert.Equal(t, []string{"Cooking", "Juggling"}, topicsErr.Topics)
	assert.Contains(t, err.Error(), "Cooking, Juggling")

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestQuestionService_DuplicateTitle(t *testing.T) {
	ctx := context.Background()
	svc := service.NewQuestionService(memory.NewQuestionRepository(), nil, nil)

	_, err := svc.Create(ctx, "admin", newQuestion("Reverse String", "Strings"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "admin", newQuestion("Reverse String", "Strings"))
	assert.ErrorIs(t, err, service.ErrDuplicateTitle)
}

func TestQuestionService_TopicsIsACopy(t *testing.T) {
	svc := service.NewQuestionService(memory.NewQuestionRepository(), nil, nil)

	topics := svc.Topics()
	require.NotEmpty(t, topics)
	topics[0] = "changed"
	assert.NotEqual(t, "changed", svc.Topics()[0])
}

func TestQuestionService_UpdateKeepsTopicsWhenOmitted(t *testing.T) {
	ctx := context.Background()
	svc := service.NewQuestionService(memory.NewQuestionRepository(), nil, nil)

	created, err := svc.Create(ctx, "admin", newQuestion("Valid Anagram", "Strings", "Hash Table"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "admin", created.ID, newQuestion("Valid Anagram II"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Strings", "Hash Table"}, updated.Topics)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Valid Anagram II", got.Title)
	assert.Equal(t, []string{"Strings", "Hash Table"}, got.Topics)

	cleared, err := svc.Update(ctx, "admin", created.ID, newQuestion("Valid Anagram II", []string{}...))
	require.NoError(t, err)
	assert.Empty(t, cleared.Topics)
}
