package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultCookieName is the cookie carrying the session token.
const DefaultCookieName = "jwt"

// RejectionObserver is notified of every rejected request.
type RejectionObserver interface {
	RecordAuthRejection(reason string)
}

// MiddlewareOptions configures the fiber adapters.
type MiddlewareOptions struct {
	CookieName string
	Logger     *zap.Logger
	Observer   RejectionObserver
}

// Middleware adapts the auth pipeline to fiber handlers.
type Middleware struct {
	protect    *Pipeline
	admin      *Pipeline
	cookieName string
	logger     *zap.Logger
	observer   RejectionObserver
}

// NewMiddleware constructs middleware running verify and resolve for every
// protected route, and the admin gate for admin routes.
func NewMiddleware(verifier TokenVerifier, resolver IdentityResolver, opts MiddlewareOptions) *Middleware {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	protect := NewPipeline(VerifyStage(verifier), ResolveStage(resolver))
	return &Middleware{
		protect:    protect,
		admin:      protect.Then(AuthorizeStage()),
		cookieName: opts.CookieName,
		logger:     opts.Logger,
		observer:   opts.Observer,
	}
}

// CookieName returns the cookie the middleware reads the token from.
func (m *Middleware) CookieName() string {
	return m.cookieName
}

// Protect requires a valid session and attaches the caller identity.
func (m *Middleware) Protect() fiber.Handler {
	return m.run(m.protect)
}

// ProtectAdmin is Protect followed by the admin gate in a single pipeline.
func (m *Middleware) ProtectAdmin() fiber.Handler {
	return m.run(m.admin)
}

// RequireAdmin gates a route that already passed Protect.
func (m *Middleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if err := Authorize(identity); err != nil {
			from := StateIdentityResolved
			if identity == nil {
				from = StateStart
			}
			return m.reject(c, &StageError{From: from, Err: err})
		}
		return c.Next()
	}
}

func (m *Middleware) run(p *Pipeline) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := p.Run(c.UserContext(), m.extractToken(c))
		if err != nil {
			return m.reject(c, err)
		}
		attachSession(c, session.Dispatch())
		return c.Next()
	}
}

// extractToken reads the session cookie, falling back to a bearer header.
func (m *Middleware) extractToken(c *fiber.Ctx) string {
	if token := c.Cookies(m.cookieName); token != "" {
		return token
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (m *Middleware) reject(c *fiber.Ctx, err error) error {
	rejection := RejectionFor(err)
	if rejection.Internal() {
		fields := []zap.Field{zap.Error(err), zap.String("path", c.Path())}
		var stageErr *StageError
		if errors.As(err, &stageErr) {
			fields = append(fields, zap.Stringer("state", stageErr.From))
		}
		m.logger.Error("auth pipeline failed", fields...)
	}
	if m.observer != nil {
		m.observer.RecordAuthRejection(rejection.Reason)
	}
	return c.Status(rejection.Status).JSON(rejection.Body)
}
