package dto

import (
	"errors"
	"regexp"
	"time"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/peerprep/backend/internal/domain"
)

var (
	usernamePattern = regexp.MustCompile(`^[0-9A-Za-z_]+$`)
	passwordPattern = regexp.MustCompile(`^[0-9A-Za-z]+$`)
)

// passwordRules: 8+ letters or digits with at least one upper, one lower and
// one digit. bcrypt ignores bytes past 72.
var passwordRules = []validation.Rule{
	validation.Length(8, 72),
	validation.Match(passwordPattern).Error("must contain only letters and digits"),
	validation.By(passwordComplexity),
}

var usernameRules = []validation.Rule{
	validation.Length(1, 32),
	validation.Match(usernamePattern).Error("must contain only letters, digits and underscores"),
}

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the signup rules.
func (r UserRegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, append([]validation.Rule{validation.Required}, usernameRules...)...),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, append([]validation.Rule{validation.Required}, passwordRules...)...),
	)
}

// UserLoginRequest payload for login. Identifier is an email or a username.
type UserLoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// LoginIdentifier returns the identifier, accepting the legacy email field.
func (r UserLoginRequest) LoginIdentifier() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Email
}

// Validate checks required fields.
func (r UserLoginRequest) Validate() error {
	identifier := r.LoginIdentifier()
	return validation.Errors{
		"identifier": validation.Validate(identifier, validation.Required),
		"password":   validation.Validate(r.Password, validation.Required),
	}.Filter()
}

// UserUpdateRequest payload for partial account updates.
type UserUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate applies the signup rules to the fields that are present.
func (r UserUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, append([]validation.Rule{validation.NilOrNotEmpty}, usernameRules...)...),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.Password, append([]validation.Rule{validation.NilOrNotEmpty}, passwordRules...)...),
	)
}

// PrivilegeUpdateRequest payload for toggling the admin flag.
type PrivilegeUpdateRequest struct {
	IsAdmin *bool `json:"isAdmin"`
}

// Validate requires the flag to be present.
func (r PrivilegeUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IsAdmin, validation.NotNil),
	)
}

// PasswordResetRequest starts a reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// Validate checks the email.
func (r PasswordResetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// PasswordResetConfirmRequest completes a reset.
type PasswordResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate checks the token and the new password.
func (r PasswordResetConfirmRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required, is.UUID),
		validation.Field(&r.Password, append([]validation.Rule{validation.Required}, passwordRules...)...),
	)
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse maps an identity to its response.
func NewUserResponse(identity *domain.Identity) UserResponse {
	return UserResponse{
		ID:        identity.ID,
		Username:  identity.Username,
		Email:     identity.Email,
		IsAdmin:   identity.IsAdmin,
		CreatedAt: identity.CreatedAt,
		UpdatedAt: identity.UpdatedAt,
	}
}

func passwordComplexity(value interface{}) error {
	var password string
	switch v := value.(type) {
	case string:
		password = v
	case *string:
		if v == nil {
			return nil
		}
		password = *v
	default:
		return errors.New("must be a string")
	}
	if password == "" {
		return nil
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return errors.New("must contain an upper case letter, a lower case letter and a digit")
	}
	return nil
}
