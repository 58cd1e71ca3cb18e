package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/peerprep/backend/internal/api/dto"
	"github.com/peerprep/backend/internal/service"
	apperrors "github.com/peerprep/backend/pkg/util/errorutil"
)

type validatable interface {
	Validate() error
}

// parseAndValidate decodes the JSON body into req and runs its ozzo rules.
func parseAndValidate(c *fiber.Ctx, req validatable) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("validation failed", dto.ValidationDetails(err))
	}
	return nil
}

func mapUserError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.NewUnauthorized("wrong email/username and/or password")
	case errors.Is(err, service.ErrAccountLocked):
		return apperrors.NewAccountLocked("account locked after too many failed logins; reset your password to unlock it")
	case errors.Is(err, service.ErrUserNotFound):
		return apperrors.NewNotFound("user", nil)
	case errors.Is(err, service.ErrNotPermitted):
		return apperrors.NewForbidden("not authorized to modify this account")
	case errors.Is(err, service.ErrUsernameTaken):
		return apperrors.NewConflict("username already exists", map[string]any{"field": "username"})
	case errors.Is(err, service.ErrEmailTaken):
		return apperrors.NewConflict("email already exists", map[string]any{"field": "email"})
	case errors.Is(err, service.ErrInvalidResetToken):
		return apperrors.NewBadRequest("reset token is invalid or expired")
	}
	return apperrors.NewInternalError(err)
}

func mapQuestionError(err error, id int64, title string) error {
	var topicsErr *service.InvalidTopicsError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &topicsErr):
		return apperrors.NewValidationError(err.Error(), map[string]any{"topics": topicsErr.Topics})
	case errors.Is(err, service.ErrQuestionNotFound):
		return apperrors.NewDomainError("NOT_FOUND",
			fmt.Sprintf("question of ID: %d does not exist in the database", id), http.StatusNotFound, nil)
	case errors.Is(err, service.ErrDuplicateTitle):
		return apperrors.NewConflict(fmt.Sprintf("a question with the title '%s' already exists", title), nil)
	}
	return apperrors.NewInternalError(err)
}
