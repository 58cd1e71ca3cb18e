package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoToken is returned when the request carries no session token.
	ErrNoToken = errors.New("no token provided")
	// ErrInvalidToken covers bad signatures, malformed tokens, expiry and missing claims.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenManager issues and verifies HS256 session tokens against one shared secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager. A non-positive ttl falls back to one hour.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the manager that reads time from now.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	clone := *tm
	clone.now = now
	return &clone
}

// TTL reports the lifetime of issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Claims describes the session token payload.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a session token for the user.
func (tm *TokenManager) GenerateToken(userID string) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature and expiry and returns the claims.
// It has no side effects: the same token yields the same claims until it expires.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrNoToken
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing userId claim", ErrInvalidToken)
	}
	return claims, nil
}
