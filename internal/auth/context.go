package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/peerprep/backend/internal/domain"
)

const (
	identityLocalsKey = "auth_identity"
	stateLocalsKey    = "auth_state"
)

var identityCtxKey = &contextKey{"identity"}

type contextKey struct {
	name string
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// IdentityFrom returns the identity stored by WithIdentity.
func IdentityFrom(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(*domain.Identity)
	return identity, ok && identity != nil
}

// IdentityFromContext retrieves the identity attached by the Protect middleware.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityLocalsKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok && identity != nil
}

// StateFromContext returns the pipeline state recorded by the Protect middleware.
func StateFromContext(c *fiber.Ctx) (State, bool) {
	state, ok := c.Locals(stateLocalsKey).(State)
	return state, ok
}

func attachSession(c *fiber.Ctx, session Session) {
	c.Locals(identityLocalsKey, session.Identity)
	c.Locals(stateLocalsKey, session.State)
	c.SetUserContext(WithIdentity(c.UserContext(), session.Identity))
}
