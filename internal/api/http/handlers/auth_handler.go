package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/peerprep/backend/internal/api/dto"
	"github.com/peerprep/backend/internal/auth"
	"github.com/peerprep/backend/internal/service"
	apperrors "github.com/peerprep/backend/pkg/util/errorutil"
)

// CookieSettings controls the session cookie written at login.
type CookieSettings struct {
	Name   string
	Secure bool
}

// AuthHandler exposes login, logout, token verification and password reset.
type AuthHandler struct {
	users  *service.UserService
	cookie CookieSettings
}

// NewAuthHandler constructs handler.
func NewAuthHandler(users *service.UserService, cookie CookieSettings) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = auth.DefaultCookieName
	}
	return &AuthHandler{users: users, cookie: cookie}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	identity, token, exp, err := h.users.Login(c.UserContext(), req.LoginIdentifier(), req.Password)
	if err != nil {
		return mapUserError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		MaxAge:   int(time.Until(exp).Seconds()),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{
		"message": "User logged in",
		"data": fiber.Map{
			"user": dto.NewUserResponse(identity),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{"message": "User logged out"})
}

// VerifyToken handles GET /auth/verify-token behind the Protect middleware.
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no identity attached")
	}
	return c.JSON(fiber.Map{
		"message": "Token verified",
		"data":    dto.NewUserResponse(identity),
	})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.users.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return mapUserError(err)
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"message": "if the account exists, a reset token has been issued",
	})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.users.ConfirmPasswordReset(c.UserContext(), req.Token, req.Password); err != nil {
		return mapUserError(err)
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}
