package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/peerprep/backend/internal/domain"
)

// State is the progress of a request through the pipeline.
type State int

const (
	StateStart State = iota
	StateTokenChecked
	StateIdentityResolved
	StateAuthorized
	StateDispatched
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateTokenChecked:
		return "token_checked"
	case StateIdentityResolved:
		return "identity_resolved"
	case StateAuthorized:
		return "authorized"
	case StateDispatched:
		return "dispatched"
	case StateRejected:
		return "rejected"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrStagePanic wraps a panic recovered while running a stage.
var ErrStagePanic = errors.New("pipeline stage panicked")

// Session is the per-request value threaded through the stages.
type Session struct {
	Token    string
	Claims   *Claims
	Identity *domain.Identity
	State    State
}

// Dispatch marks an accepted session as handed to the route handler.
func (s Session) Dispatch() Session {
	s.State = StateDispatched
	return s
}

// Stage advances a session or fails. Stages must not mutate shared state.
type Stage func(ctx context.Context, s Session) (Session, error)

// StageError records where in the pipeline a request was rejected.
type StageError struct {
	From State
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("auth pipeline rejected at %s: %v", e.From, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// TokenVerifier validates a raw session token.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// IdentityResolver maps claims onto a stored identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, claims *Claims) (*domain.Identity, error)
}

// Pipeline is an ordered list of stages with early exit on the first failure.
type Pipeline struct {
	stages []Stage
}

// NewPipeline composes stages in order.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: append([]Stage(nil), stages...)}
}

// Then returns a new pipeline running p's stages followed by extra.
func (p *Pipeline) Then(extra ...Stage) *Pipeline {
	stages := make([]Stage, 0, len(p.stages)+len(extra))
	stages = append(stages, p.stages...)
	stages = append(stages, extra...)
	return &Pipeline{stages: stages}
}

// Run executes every stage for token. On failure the returned session is in
// StateRejected and err is a *StageError.
func (p *Pipeline) Run(ctx context.Context, token string) (Session, error) {
	session := Session{Token: token, State: StateStart}
	for _, stage := range p.stages {
		next, err := runStage(ctx, stage, session)
		if err != nil {
			from := session.State
			session.State = StateRejected
			return session, &StageError{From: from, Err: err}
		}
		session = next
	}
	return session, nil
}

func runStage(ctx context.Context, stage Stage, s Session) (next Session, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrStagePanic, r)
		}
	}()
	return stage(ctx, s)
}

// VerifyStage checks the token and stores its claims.
func VerifyStage(verifier TokenVerifier) Stage {
	return func(_ context.Context, s Session) (Session, error) {
		claims, err := verifier.Verify(s.Token)
		if err != nil {
			return s, err
		}
		s.Claims = claims
		s.State = StateTokenChecked
		return s, nil
	}
}

// ResolveStage loads the identity for the verified claims.
func ResolveStage(resolver IdentityResolver) Stage {
	return func(ctx context.Context, s Session) (Session, error) {
		identity, err := resolver.Resolve(ctx, s.Claims)
		if err != nil {
			return s, err
		}
		s.Identity = identity
		s.State = StateIdentityResolved
		return s, nil
	}
}

// AuthorizeStage applies the admin gate to the resolved identity.
func AuthorizeStage() Stage {
	return func(_ context.Context, s Session) (Session, error) {
		if err := Authorize(s.Identity); err != nil {
			return s, err
		}
		s.State = StateAuthorized
		return s, nil
	}
}

// Rejection is the fixed response for a pipeline failure.
type Rejection struct {
	Status int
	Body   fiber.Map
	Reason string
}

// Internal reports whether the rejection hides a server-side fault.
func (r Rejection) Internal() bool {
	return r.Status >= http.StatusInternalServerError
}

// RejectionFor translates a pipeline error into its response. Unknown errors
// become a generic 500 without the cause.
func RejectionFor(err error) Rejection {
	switch {
	case errors.Is(err, ErrNoToken):
		return Rejection{Status: http.StatusUnauthorized, Body: fiber.Map{"error": "Unauthorized: No Token Provided"}, Reason: "no_token"}
	case errors.Is(err, ErrInvalidToken):
		return Rejection{Status: http.StatusUnauthorized, Body: fiber.Map{"error": "Unauthorized: Invalid Token"}, Reason: "invalid_token"}
	case errors.Is(err, ErrUserNotFound):
		return Rejection{Status: http.StatusNotFound, Body: fiber.Map{"error": "User not found"}, Reason: "user_not_found"}
	case errors.Is(err, ErrForbidden):
		return Rejection{Status: http.StatusForbidden, Body: fiber.Map{"message": "Not authorized to access this resource"}, Reason: "forbidden"}
	}
	return Rejection{Status: http.StatusInternalServerError, Body: fiber.Map{"message": "Internal server error!"}, Reason: "internal"}
}
