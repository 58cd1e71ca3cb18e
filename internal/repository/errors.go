package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned when a write collides with an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when a write collides with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrTitleTaken is returned when a write collides with an existing question title.
	ErrTitleTaken = errors.New("question title already exists")
)

const uniqueViolation = "23505"

// translate maps driver errors onto repository sentinels. Other errors are
// returned untouched so callers can tell a missing row from a broken store.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return ErrUsernameTaken
		case "users_email_key":
			return ErrEmailTaken
		case "questions_title_key":
			return ErrTitleTaken
		}
	}
	return err
}
