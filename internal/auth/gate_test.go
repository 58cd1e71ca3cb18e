package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerprep/backend/internal/auth"
)

func TestAuthorize(t *testing.T) {
	assert.NoError(t, auth.Authorize(newIdentity(true)))
	assert.ErrorIs(t, auth.Authorize(newIdentity(false)), auth.ErrForbidden)
	assert.ErrorIs(t, auth.Authorize(nil), auth.ErrMissingIdentity)
}
