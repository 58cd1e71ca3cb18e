package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/peerprep/backend/internal/api/dto"
	"github.com/peerprep/backend/internal/auth"
	"github.com/peerprep/backend/internal/service"
	apperrors "github.com/peerprep/backend/pkg/util/errorutil"
)

// QuestionsHandler exposes the question bank.
type QuestionsHandler struct {
	questions *service.QuestionService
}

// NewQuestionsHandler constructs handler.
func NewQuestionsHandler(questions *service.QuestionService) *QuestionsHandler {
	return &QuestionsHandler{questions: questions}
}

// List handles GET /questions.
func (h *QuestionsHandler) List(c *fiber.Ctx) error {
	questions, err := h.questions.List(c.UserContext())
	if err != nil {
		return mapQuestionError(err, 0, "")
	}
	return c.JSON(dto.QuestionListResponse{Length: len(questions), Data: questions})
}

// Topics handles GET /questions/topics.
func (h *QuestionsHandler) Topics(c *fiber.Ctx) error {
	return c.JSON(h.questions.Topics())
}

// Get handles GET /questions/:id.
func (h *QuestionsHandler) Get(c *fiber.Ctx) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}
	question, err := h.questions.Get(c.UserContext(), id)
	if err != nil {
		return mapQuestionError(err, id, "")
	}
	return c.JSON(question)
}

// Create handles POST /questions.
func (h *QuestionsHandler) Create(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	question, err := h.questions.Create(c.UserContext(), actorID(c), req.ToDomain())
	if err != nil {
		return mapQuestionError(err, 0, req.Title)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Question successfully created",
		"data":    question,
	})
}

// Update handles PUT /questions/:id.
func (h *QuestionsHandler) Update(c *fiber.Ctx) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}
	var req dto.QuestionRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	question, err := h.questions.Update(c.UserContext(), actorID(c), id, req.ToDomain())
	if err != nil {
		return mapQuestionError(err, id, req.Title)
	}
	return c.JSON(fiber.Map{
		"message": "Question successfully updated",
		"data":    question,
	})
}

// Delete handles DELETE /questions/:id.
func (h *QuestionsHandler) Delete(c *fiber.Ctx) error {
	id, err := questionID(c)
	if err != nil {
		return err
	}
	if err := h.questions.Delete(c.UserContext(), actorID(c), id); err != nil {
		return mapQuestionError(err, id, "")
	}
	return c.JSON(fiber.Map{"message": "Question successfully deleted"})
}

func questionID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := service.ParseQuestionID(raw)
	if errors.Is(err, service.ErrInvalidQuestionID) {
		return 0, apperrors.NewBadRequest(fmt.Sprintf("Invalid ID: %s. Please provide a valid number.", raw))
	}
	return id, err
}

func actorID(c *fiber.Ctx) string {
	if identity, ok := auth.IdentityFromContext(c); ok {
		return identity.ID
	}
	return ""
}
