package observability

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peerprep/backend/internal/auth"
	"github.com/peerprep/backend/internal/config"
	apperrors "github.com/peerprep/backend/pkg/util/errorutil"
)

// NewLogger creates a structured zap.Logger configured via env settings.
func NewLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: level == zapcore.DebugLevel,
		Encoding:    "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:    "message",
			LevelKey:      "level",
			TimeKey:       "ts",
			CallerKey:     "caller",
			StacktraceKey: "stacktrace",
			EncodeLevel:   zapcore.LowercaseLevelEncoder,
			EncodeTime:    zapcore.ISO8601TimeEncoder,
			EncodeCaller:  zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapCfg.Build()
}

// RequestLogger logs one line per request and feeds request metrics. It runs
// inside the error middleware, so a returned error supplies the status that
// will be rendered.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			status = apperrors.ToDomainError(err).HTTPStatus
		}
		route := c.Route().Path
		metrics.RecordRequest(route, c.Method(), status, duration)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		}
		if requestID, ok := c.Locals("requestid").(string); ok && requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
		if identity, ok := auth.IdentityFromContext(c); ok {
			fields = append(fields, zap.String("user_id", identity.ID))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("http_request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("http_request", fields...)
		default:
			logger.Info("http_request", fields...)
		}
		return err
	}
}
