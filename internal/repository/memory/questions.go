package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/peerprep/backend/internal/domain"
	"github.com/peerprep/backend/internal/repository"
)

// QuestionRepository is a map-backed repository.QuestionRepository.
type QuestionRepository struct {
	mu        sync.RWMutex
	nextID    int64
	questions map[int64]*domain.Question
}

var _ repository.QuestionRepository = (*QuestionRepository)(nil)

// NewQuestionRepository returns an empty repository.
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{questions: make(map[int64]*domain.Question)}
}

func (r *QuestionRepository) Create(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.titleTaken(q) {
		return repository.ErrTitleTaken
	}
	r.nextID++
	q.ID = r.nextID
	q.CreatedAt = time.Now().UTC()
	q.UpdatedAt = q.CreatedAt
	r.questions[q.ID] = clone(q)
	return nil
}

func (r *QuestionRepository) Update(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.questions[q.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.titleTaken(q) {
		return repository.ErrTitleTaken
	}
	if q.Topics == nil {
		q.Topics = append([]string{}, existing.Topics...)
	}
	q.CreatedAt = existing.CreatedAt
	q.UpdatedAt = time.Now().UTC()
	r.questions[q.ID] = clone(q)
	return nil
}

func (r *QuestionRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.questions, id)
	return nil
}

func (r *QuestionRepository) GetByID(_ context.Context, id int64) (*domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(q), nil
}

func (r *QuestionRepository) List(_ context.Context) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, *clone(q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *QuestionRepository) titleTaken(q *domain.Question) bool {
	for _, existing := range r.questions {
		if existing.ID != q.ID && existing.Title == q.Title {
			return true
		}
	}
	return false
}

func clone(q *domain.Question) *domain.Question {
	copied := *q
	copied.Topics = append([]string{}, q.Topics...)
	return &copied
}
