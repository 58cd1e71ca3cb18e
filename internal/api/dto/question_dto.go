package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/peerprep/backend/internal/domain"
)

// QuestionRequest payload for creating or replacing a question.
type QuestionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Topics      []string `json:"topics"`
}

// Validate checks required fields and the difficulty value. Topics are
// checked by the service against the fixed topic list.
func (r QuestionRequest) Validate() error {
	difficulties := make([]interface{}, 0, len(domain.Difficulties))
	for _, d := range domain.Difficulties {
		difficulties = append(difficulties, string(d))
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Difficulty, validation.Required, validation.In(difficulties...)),
	)
}

// ToDomain converts the request into a question value.
func (r QuestionRequest) ToDomain() domain.Question {
	return domain.Question{
		Title:       r.Title,
		Description: r.Description,
		Difficulty:  domain.Difficulty(r.Difficulty),
		Topics:      r.Topics,
	}
}

// QuestionListResponse wraps the question list.
type QuestionListResponse struct {
	Length int               `json:"length"`
	Data   []domain.Question `json:"data"`
}
