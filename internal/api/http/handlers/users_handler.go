package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/peerprep/backend/internal/api/dto"
	"github.com/peerprep/backend/internal/auth"
	"github.com/peerprep/backend/internal/service"
	apperrors "github.com/peerprep/backend/pkg/util/errorutil"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Register handles POST /users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	identity, err := h.users.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return mapUserError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "created new user " + identity.Username + " successfully",
		"data":    fiber.Map{"user": dto.NewUserResponse(identity)},
	})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	identities, err := h.users.List(c.UserContext())
	if err != nil {
		return mapUserError(err)
	}
	users := make([]dto.UserResponse, 0, len(identities))
	for i := range identities {
		users = append(users, dto.NewUserResponse(&identities[i]))
	}
	return c.JSON(fiber.Map{"data": users})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	identity, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapUserError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(identity)})
}

// Update handles PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	if req.Username == nil && req.Email == nil && req.Password == nil {
		return apperrors.NewBadRequest("no field to update: username, email and password are all missing")
	}

	actor, _ := auth.IdentityFromContext(c)
	identity, err := h.users.Update(c.UserContext(), actor, c.Params("id"), service.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return mapUserError(err)
	}
	return c.JSON(fiber.Map{
		"message": "updated user " + identity.ID,
		"data":    dto.NewUserResponse(identity),
	})
}

// UpdatePrivilege handles PATCH /users/:id/privilege.
func (h *UsersHandler) UpdatePrivilege(c *fiber.Ctx) error {
	var req dto.PrivilegeUpdateRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	actor, _ := auth.IdentityFromContext(c)
	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	identity, err := h.users.SetAdmin(c.UserContext(), actorID, c.Params("id"), *req.IsAdmin)
	if err != nil {
		return mapUserError(err)
	}
	return c.JSON(fiber.Map{
		"message": "updated privilege for user " + identity.ID,
		"data":    dto.NewUserResponse(identity),
	})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	actor, _ := auth.IdentityFromContext(c)
	id := c.Params("id")
	if err := h.users.Delete(c.UserContext(), actor, id); err != nil {
		return mapUserError(err)
	}
	return c.JSON(fiber.Map{"message": "deleted user " + id + " successfully"})
}
