package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerprep/backend/internal/domain"
)

// QuestionRepository encapsulates question bank persistence.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	Update(ctx context.Context, question *domain.Question) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	List(ctx context.Context) ([]domain.Question, error)
}

type questionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository instantiates repository.
func NewQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepository{pool: pool}
}

const questionColumns = `id, title, description, difficulty, topics, created_at, updated_at`

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) error {
	const query = `
        INSERT INTO questions (title, description, difficulty, topics)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		question.Title,
		question.Description,
		question.Difficulty,
		topicsOrEmpty(question.Topics),
	).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
	return translate(err)
}

// Update replaces the question's fields. Nil topics keep the stored ones.
func (r *questionRepository) Update(ctx context.Context, question *domain.Question) error {
	const query = `
        UPDATE questions SET title=$1, description=$2, difficulty=$3, topics=COALESCE($4, topics), updated_at=NOW()
        WHERE id=$5
        RETURNING topics, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		question.Title,
		question.Description,
		question.Difficulty,
		question.Topics,
		question.ID,
	).Scan(&question.Topics, &question.CreatedAt, &question.UpdatedAt)
	return translate(err)
}

func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	question, err := scanQuestion(r.pool.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return question, nil
}

func (r *questionRepository) List(ctx context.Context) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}
	return questions, rows.Err()
}

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	var q domain.Question
	if err := row.Scan(
		&q.ID,
		&q.Title,
		&q.Description,
		&q.Difficulty,
		&q.Topics,
		&q.CreatedAt,
		&q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &q, nil
}

func topicsOrEmpty(topics []string) []string {
	if topics == nil {
		return []string{}
	}
	return topics
}
