package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/realtor-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// UserStore is the persistence collaborator of the auth service.
// FindUserByEmail returns (nil, nil) when no user has that email.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user NewUser) (*User, error)
}

// pgUserStore implements UserStore on top of a pgx pool.
type pgUserStore struct {
	db *pgxpool.Pool
}

// NewUserStore creates a PostgreSQL-backed UserStore.
func NewUserStore(db *pgxpool.Pool) UserStore {
	return &pgUserStore{db: db}
}

const userColumns = `id, name, phone, email, password, user_type, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.HashedPassword, &u.UserType, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *pgUserStore) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(s.db.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewDatabaseError("failed to get user by email", err)
	}
	return user, nil
}

func (s *pgUserStore) CreateUser(ctx context.Context, nu NewUser) (*User, error) {
	query := `INSERT INTO users (name, phone, email, password, user_type)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING ` + userColumns
	user, err := scanUser(s.db.QueryRow(ctx, query, nu.Name, nu.Phone, strings.ToLower(nu.Email), nu.HashedPassword, nu.UserType))
	if err != nil {
		// The unique index on email is what actually guarantees uniqueness; the
		// service's pre-check only produces the friendlier error in the common case.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("email already exists", err)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}
