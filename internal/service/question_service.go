package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/peerprep/backend/internal/domain"
	"github.com/peerprep/backend/internal/events"
	"github.com/peerprep/backend/internal/repository"
)

var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrInvalidQuestionID = errors.New("invalid question id")
	ErrDuplicateTitle    = repository.ErrTitleTaken
)

// InvalidTopicsError lists topics outside domain.QuestionTopics.
type InvalidTopicsError struct {
	Topics []string
}

func (e *InvalidTopicsError) Error() string {
	return fmt.Sprintf("invalid topics provided: %s; allowed topics are: %s",
		strings.Join(e.Topics, ", "), strings.Join(domain.QuestionTopics, ", "))
}

// QuestionService manages the question bank.
type QuestionService struct {
	questions repository.QuestionRepository
	events    events.Dispatcher
	logger    *zap.Logger
}

// NewQuestionService builds the service.
func NewQuestionService(questions repository.QuestionRepository, dispatcher events.Dispatcher, logger *zap.Logger) *QuestionService {
	if dispatcher == nil {
		dispatcher = events.NopDispatcher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{questions: questions, events: dispatcher, logger: logger}
}

// ParseQuestionID parses a path id. Only positive integers name a question.
func ParseQuestionID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuestionID, raw)
	}
	return id, nil
}

// Topics returns the fixed topic list.
func (s *QuestionService) Topics() []string {
	return append([]string(nil), domain.QuestionTopics...)
}

// List returns every question ordered by id.
func (s *QuestionService) List(ctx context.Context) ([]domain.Question, error) {
	return s.questions.List(ctx)
}

// Get returns one question.
func (s *QuestionService) Get(ctx context.Context, id int64) (*domain.Question, error) {
	question, err := s.questions.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrQuestionNotFound
	}
	return question, err
}

// Create stores a new question.
func (s *QuestionService) Create(ctx context.Context, actorID string, question domain.Question) (*domain.Question, error) {
	if err := validateTopics(question.Topics); err != nil {
		return nil, err
	}
	if err := s.questions.Create(ctx, &question); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventQuestionCreated, actorID, &question)
	return &question, nil
}

// Update replaces the question with id. Omitted topics are left unchanged.
func (s *QuestionService) Update(ctx context.Context, actorID string, id int64, question domain.Question) (*domain.Question, error) {
	if err := validateTopics(question.Topics); err != nil {
		return nil, err
	}
	question.ID = id
	if err := s.questions.Update(ctx, &question); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	s.publish(ctx, events.EventQuestionUpdated, actorID, &question)
	return &question, nil
}

// Delete removes the question with id.
func (s *QuestionService) Delete(ctx context.Context, actorID string, id int64) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	s.publish(ctx, events.EventQuestionDeleted, actorID, &domain.Question{ID: id})
	return nil
}

func (s *QuestionService) publish(ctx context.Context, eventType events.EventType, actorID string, q *domain.Question) {
	event := events.Event{
		Type:      eventType,
		ActorID:   actorID,
		SubjectID: strconv.FormatInt(q.ID, 10),
		Payload:   events.QuestionPayload{Title: q.Title, Difficulty: string(q.Difficulty)},
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}

func validateTopics(topics []string) error {
	var invalid []string
	for _, topic := range topics {
		if !domain.IsQuestionTopic(topic) {
			invalid = append(invalid, topic)
		}
	}
	if len(invalid) > 0 {
		return &InvalidTopicsError{Topics: invalid}
	}
	return nil
}
