package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/peerprep/backend/internal/api/http/handlers"
	"github.com/peerprep/backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Questions      *handlers.QuestionsHandler
	AuthMiddleware *auth.Middleware
	LoginLimiter   *RateLimiter
	Metrics        fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	protect := cfg.AuthMiddleware.Protect()
	admin := cfg.AuthMiddleware.RequireAdmin()

	authGroup := app.Group("/auth")
	if cfg.LoginLimiter != nil {
		authGroup.Post("/login", cfg.LoginLimiter.Handler(), cfg.Auth.Login)
	} else {
		authGroup.Post("/login", cfg.Auth.Login)
	}
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/verify-token", protect, cfg.Auth.VerifyToken)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Register)
	users.Get("/", protect, admin, cfg.Users.List)
	users.Get("/:id", protect, cfg.Users.Get)
	users.Patch("/:id", protect, cfg.Users.Update)
	users.Patch("/:id/privilege", protect, admin, cfg.Users.UpdatePrivilege)
	users.Delete("/:id", protect, cfg.Users.Delete)

	questions := app.Group("/questions")
	questions.Get("/", cfg.Questions.List)
	questions.Get("/topics", cfg.Questions.Topics)
	questions.Get("/:id", cfg.Questions.Get)

	adminOnly := cfg.AuthMiddleware.ProtectAdmin()
	questions.Post("/", adminOnly, cfg.Questions.Create)
	questions.Put("/:id", adminOnly, cfg.Questions.Update)
	questions.Delete("/:id", adminOnly, cfg.Questions.Delete)
}
