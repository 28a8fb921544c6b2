// Package users, as part of the user profile management module.
// This file, `service.go`, contains the business logic for user profile operations.
// It acts as the "Service" layer, analogous to a Service class in Nest.js.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	// `pgx` specific imports for PostgreSQL interaction.
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/realtor-go/apperror" // For standardized error handling.
)

// ProfileService is what the handlers need from the service layer.
// Declaring it as an interface lets handler tests swap in a mock.
type ProfileService interface {
	GetUserProfile(ctx context.Context, userID int) (*UserProfileResponse, error)
	UpdateUserProfile(ctx context.Context, userID int, req *UpdateUserProfileRequest) (*UserProfileResponse, error)
}

// UserService provides methods for user profile management.
type UserService struct {
	// `db` is the connection pool, injected via the constructor.
	db *pgxpool.Pool
}

// NewUserService creates a new UserService.
func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

const profileColumns = `id, name, phone, email, user_type, created_at, updated_at`

func scanProfile(row pgx.Row) (*UserProfileResponse, error) {
	var p UserProfileResponse
	if err := row.Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &p.UserType, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *UserService) GetUserProfile(ctx context.Context, userID int) (*UserProfileResponse, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE id = $1`

	profile, err := scanProfile(s.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// If no user is found, return a `NotFoundError` from the `apperror` package.
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user profile", err)
	}
	return profile, nil
}

// buildProfileUpdate constructs the SET clause of the UPDATE dynamically from the
// provided fields. The returned argID is the placeholder index for the WHERE id.
func buildProfileUpdate(req *UpdateUserProfileRequest) (setClauses []string, args []interface{}, argID int) {
	argID = 1

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, strings.TrimSpace(*req.Name))
		argID++
	}
	if req.Phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", argID))
		args = append(args, *req.Phone)
		argID++
	}
	if len(setClauses) > 0 {
		setClauses = append(setClauses, "updated_at = now()")
	}
	return setClauses, args, argID
}

// UpdateUserProfile updates a user's profile.
func (s *UserService) UpdateUserProfile(ctx context.Context, userID int, req *UpdateUserProfileRequest) (*UserProfileResponse, error) {
	setClauses, args, argID := buildProfileUpdate(req)
	if len(setClauses) == 0 {
		// No fields to update, just return current profile
		return s.GetUserProfile(ctx, userID)
	}

	// Add the userID for the WHERE clause.
	args = append(args, userID)

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argID, profileColumns)

	profile, err := scanProfile(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		// UPDATE ... RETURNING yields no row when the id does not exist, which
		// doubles as the existence check.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to update user profile", err)
	}
	return profile, nil
}
