package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"formforge-api/internal/model"
)

// ErrDuplicateEmail is returned when an account with the email already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, email string, hashedPassword []byte) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a UserRepository backed by PostgreSQL.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const insertUserQuery = `
	INSERT INTO users (email, hashed_password)
	VALUES ($1, $2)
	RETURNING id, email, created_at, updated_at
`

const getUserByEmailQuery = `
	SELECT id, email, hashed_password, created_at, updated_at
	FROM users
	WHERE email = $1
`

func (r *userRepository) Create(ctx context.Context, email string, hashedPassword []byte) (model.User, error) {
	var user model.User
	err := r.db.QueryRowContext(ctx, insertUserQuery, email, hashedPassword).Scan(
		&user.ID,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return model.User{}, ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.db.QueryRowContext(ctx, getUserByEmailQuery, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}
