package auth_test

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerprep/backend/internal/auth"
)

func TestTokenManager_GenerateAndVerify(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	userID := uuid.NewString()

	token, exp, err := tm.GenerateToken(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.Subject)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

func TestTokenManager_VerifyIsIdempotent(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	token, _, err := tm.GenerateToken(uuid.NewString())
	require.NoError(t, err)

	first, err := tm.Verify(token)
	require.NoError(t, err)
	second, err := tm.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTokenManager_EmptyToken(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)

	_, err := tm.Verify("")
	assert.ErrorIs(t, err, auth.ErrNoToken)
}

func TestTokenManager_RejectsInvalidTokens(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tm := auth.NewTokenManager(testSecret, time.Minute).WithClock(func() time.Time { return issued })
	userID := uuid.NewString()

	valid, _, err := tm.GenerateToken(userID)
	require.NoError(t, err)

	foreign, _, err := auth.NewTokenManager("other-secret", time.Minute).
		WithClock(func() time.Time { return issued }).
		GenerateToken(userID)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"userId": userID,
		"exp":    issued.Add(time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noUserID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": issued.Add(time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": userID,
		"exp":    issued.Add(time.Minute).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		verifier *auth.TokenManager
	}{
		{name: "garbage", token: "not-a-jwt", verifier: tm},
		{name: "tampered", token: valid + "x", verifier: tm},
		{name: "foreign secret", token: foreign, verifier: tm},
		{name: "unexpected algorithm", token: hs512, verifier: tm},
		{name: "alg none", token: unsigned, verifier: tm},
		{name: "missing userId", token: noUserID, verifier: tm},
		{name: "missing expiry", token: noExpiry, verifier: tm},
		{
			name:     "expired",
			token:    valid,
			verifier: tm.WithClock(func() time.Time { return issued.Add(2 * time.Minute) }),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.verifier.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, time.Hour, auth.NewTokenManager(testSecret, 0).TTL())
}
