package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerprep/backend/internal/domain"
)

// IdentityStore resolves users without their credential hash.
type IdentityStore interface {
	GetIdentityByID(ctx context.Context, id string) (*domain.Identity, error)
}

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	IdentityStore
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListIdentities(ctx context.Context) ([]domain.Identity, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) (*domain.Identity, error)
	IncrementFailedLogins(ctx context.Context, id string) (int, error)
	ResetFailedLogins(ctx context.Context, id string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const (
	userColumns     = `id, username, email, password_hash, is_admin, failed_login_attempts, created_at, updated_at`
	identityColumns = `id, username, email, is_admin, created_at, updated_at`
)

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, username, email, password_hash, is_admin)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return translate(err)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET username=$1, email=$2, password_hash=$3, failed_login_attempts=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FailedLoginAttempts,
		user.ID,
	).Scan(&user.UpdatedAt)
	return translate(err)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email)=lower($1)`, email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

// GetIdentityByID never selects password_hash.
func (r *userRepository) GetIdentityByID(ctx context.Context, id string) (*domain.Identity, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+identityColumns+` FROM users WHERE id=$1`, id)
	identity, err := scanIdentity(row)
	if err != nil {
		return nil, translate(err)
	}
	return identity, nil
}

func (r *userRepository) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+identityColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	identities := make([]domain.Identity, 0)
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		identities = append(identities, *identity)
	}
	return identities, rows.Err()
}

func (r *userRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) (*domain.Identity, error) {
	const query = `
        UPDATE users SET is_admin=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + identityColumns

	identity, err := scanIdentity(r.pool.QueryRow(ctx, query, isAdmin, id))
	if err != nil {
		return nil, translate(err)
	}
	return identity, nil
}

func (r *userRepository) IncrementFailedLogins(ctx context.Context, id string) (int, error) {
	const query = `
        UPDATE users SET failed_login_attempts = failed_login_attempts + 1
        WHERE id=$1
        RETURNING failed_login_attempts`

	var attempts int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&attempts); err != nil {
		return 0, translate(err)
	}
	return attempts, nil
}

func (r *userRepository) ResetFailedLogins(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET failed_login_attempts=0 WHERE id=$1 AND failed_login_attempts <> 0`, id)
	return translate(err)
}

func (r *userRepository) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.FailedLoginAttempts,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var identity domain.Identity
	if err := row.Scan(
		&identity.ID,
		&identity.Username,
		&identity.Email,
		&identity.IsAdmin,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &identity, nil
}
