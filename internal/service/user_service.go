package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peerprep/backend/internal/auth"
	"github.com/peerprep/backend/internal/config"
	"github.com/peerprep/backend/internal/domain"
	"github.com/peerprep/backend/internal/events"
	"github.com/peerprep/backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked after too many failed logins")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotPermitted       = errors.New("not permitted to modify this account")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
	ErrUsernameTaken      = repository.ErrUsernameTaken
	ErrEmailTaken         = repository.ErrEmailTaken
)

// RegisterInput carries signup fields; validation happens at the transport layer.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput carries optional account changes.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

// UserService coordinates account, login and password reset flows.
type UserService struct {
	users           repository.UserRepository
	resets          repository.PasswordResetRepository
	tokens          *auth.TokenManager
	events          events.Dispatcher
	logger          *zap.Logger
	bcryptCost      int
	resetTTL        time.Duration
	maxFailedLogins int
}

// UserDependencies encapsulates collaborators for the user service.
type UserDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Tokens            *auth.TokenManager
	Events            events.Dispatcher
	Logger            *zap.Logger
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, deps UserDependencies) *UserService {
	dispatcher := deps.Events
	if dispatcher == nil {
		dispatcher = events.NopDispatcher{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:           deps.UserRepo,
		resets:          deps.PasswordResetRepo,
		tokens:          deps.Tokens,
		events:          dispatcher,
		logger:          logger,
		bcryptCost:      cfg.BcryptCost,
		resetTTL:        cfg.PasswordResetTTL(),
		maxFailedLogins: cfg.MaxFailedLogins,
	}
}

// Register creates a new account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.Identity, error) {
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{Type: events.EventUserRegistered, ActorID: user.ID, SubjectID: user.ID})
	return user.Identity(), nil
}

// Login authenticates by email or username and issues a session token.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*domain.Identity, string, time.Time, error) {
	user, err := s.lookup(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if s.locked(user.FailedLoginAttempts) {
		return nil, "", time.Time{}, ErrAccountLocked
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		attempts, incErr := s.users.IncrementFailedLogins(ctx, user.ID)
		if incErr != nil {
			return nil, "", time.Time{}, incErr
		}
		if s.locked(attempts) {
			s.publish(ctx, events.Event{Type: events.EventUserLocked, SubjectID: user.ID})
		}
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 {
		if err := s.users.ResetFailedLogins(ctx, user.ID); err != nil {
			return nil, "", time.Time{}, err
		}
	}

	token, exp, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user.Identity(), token, exp, nil
}

// Get returns the account identity.
func (s *UserService) Get(ctx context.Context, id string) (*domain.Identity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUserNotFound
	}
	identity, err := s.users.GetIdentityByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return identity, err
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]domain.Identity, error) {
	return s.users.ListIdentities(ctx)
}

// Update changes account fields. Only the account owner or an admin may do so.
func (s *UserService) Update(ctx context.Context, actor *domain.Identity, id string, in UpdateUserInput) (*domain.Identity, error) {
	if err := canModify(actor, id); err != nil {
		return nil, err
	}
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = strings.ToLower(*in.Email)
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.Identity(), nil
}

// SetAdmin sets the role flag on an account.
func (s *UserService) SetAdmin(ctx context.Context, actorID, id string, isAdmin bool) (*domain.Identity, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUserNotFound
	}
	identity, err := s.users.SetAdmin(ctx, id, isAdmin)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserPrivilegeChanged,
		ActorID:   actorID,
		SubjectID: id,
		Payload:   events.PrivilegeChangedPayload{IsAdmin: isAdmin},
	})
	return identity, nil
}

// SetAdminByEmail is SetAdmin for operators who know the email only.
func (s *UserService) SetAdminByEmail(ctx context.Context, email string, isAdmin bool) (*domain.Identity, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.SetAdmin(ctx, "", user.ID, isAdmin)
}

// Delete removes an account. Only the account owner or an admin may do so.
func (s *UserService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	if err := canModify(actor, id); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrUserNotFound
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.publish(ctx, events.Event{Type: events.EventUserDeleted, ActorID: actor.ID, SubjectID: id})
	return nil
}

// RequestPasswordReset stores a reset token for the account with email.
// Unknown emails succeed silently so the endpoint does not reveal accounts.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.resets.Save(ctx, token, user.ID, s.resetTTL); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	// delivery is out of band; operators read the token from debug logs
	s.logger.Debug("password reset token issued", zap.String("user_id", user.ID), zap.String("token", token))
	s.publish(ctx, events.Event{Type: events.EventPasswordResetRequested, SubjectID: user.ID})
	return nil
}

// ConfirmPasswordReset consumes the token, sets the new password and unlocks the account.
func (s *UserService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	userID, err := s.resets.Consume(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	user, err := s.getUser(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.FailedLoginAttempts = 0
	return s.users.Update(ctx, user)
}

func (s *UserService) lookup(ctx context.Context, identifier string) (*domain.User, error) {
	if strings.Contains(identifier, "@") {
		return s.users.GetByEmail(ctx, identifier)
	}
	return s.users.GetByUsername(ctx, identifier)
}

func (s *UserService) getUser(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) locked(attempts int) bool {
	return s.maxFailedLogins > 0 && attempts >= s.maxFailedLogins
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

func canModify(actor *domain.Identity, id string) error {
	if actor == nil {
		return ErrNotPermitted
	}
	if actor.ID != id && !actor.IsAdmin {
		return ErrNotPermitted
	}
	return nil
}
