package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)

	cases := map[string]error{
		"users_username_key":  ErrUsernameTaken,
		"users_email_key":     ErrEmailTaken,
		"questions_title_key": ErrTitleTaken,
	}
	for constraint, want := range cases {
		err := translate(&pgconn.PgError{Code: uniqueViolation, ConstraintName: constraint})
		assert.ErrorIs(t, err, want, constraint)
	}

	other := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "something_else"}
	assert.Equal(t, error(other), translate(other))

	// connectivity failures stay distinct from a missing row
	assert.ErrorIs(t, translate(context.DeadlineExceeded), context.DeadlineExceeded)
	assert.NotErrorIs(t, translate(context.DeadlineExceeded), ErrNotFound)
}
