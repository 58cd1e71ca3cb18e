package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/peerprep/backend/internal/observability"
	apperrors "github.com/peerprep/backend/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares: request ids, timeouts,
// error rendering and request logging, outermost first.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(requestid.New())
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}

			domainErr := apperrors.ToDomainError(err)
			metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)

			body := fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			}
			if len(domainErr.Details) > 0 {
				body["details"] = domainErr.Details
			}
			if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
				logger.Error("request failed",
					zap.String("path", c.Path()),
					zap.Any("request_id", c.Locals(requestid.ConfigDefault.ContextKey)),
					zap.Error(domainErr))
			}
			err = c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
		}()
		return c.Next()
	}
}
