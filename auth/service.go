// Package auth is responsible for handling authentication and authorization logic:
// signup, signin, token refresh, the JWT middleware and the role policy that
// guards listing mutations. In Nest.js terms this directory is the AuthModule
// together with its guards and the `@User()` decorator.
package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/realtor-go/apperror"
	"github.com/user/realtor-go/logger"
)

// DefaultBcryptCost is the fixed work factor used for password hashes.
const DefaultBcryptCost = 10

// PasswordHasher hashes and verifies passwords. The hash is one-way and salted.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(hash, plaintext string) error
}

// BcryptHasher implements PasswordHasher with bcrypt at a fixed cost.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher using cost, or DefaultBcryptCost when cost is 0.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Compare(hash, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
}

// Service provides authentication-related operations.
// Its collaborators are injected through NewService, which is the Go
// counterpart of Nest.js constructor injection.
type Service struct {
	users  UserStore
	hasher PasswordHasher
	tokens *TokenIssuer
	log    *zap.Logger
}

// NewService creates a new auth Service.
func NewService(users UserStore, hasher PasswordHasher, tokens *TokenIssuer, log *zap.Logger) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

// Signup registers a new BUYER. The sequence is check email, hash, create;
// an existing email fails with a ConflictError before anything is hashed or written.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("email already exists", nil)
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user, err := s.users.CreateUser(ctx, NewUser{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          email,
		HashedPassword: hashedPassword,
		UserType:       UserTypeBuyer,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user signed up", zap.Int("user_id", user.ID), zap.String("email", logger.RedactEmail(email)))
	return user, nil
}

// Signin checks the credentials and issues a token pair.
// Unknown emails and wrong passwords produce the same error.
func (s *Service) Signin(ctx context.Context, req SigninRequest) (*TokenResponse, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	if err := s.hasher.Compare(user.HashedPassword, req.Password); err != nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	resp, err := s.tokens.GenerateTokens(UserInfo{ID: user.ID, Name: user.Name, UserType: user.UserType})
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue tokens", err)
	}
	return resp, nil
}

// RefreshToken issues a new access token for a valid refresh token.
// The refresh token itself is returned unchanged.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, apperror.NewAuthError(fmt.Sprintf("invalid refresh token: %s", err.Error()), err)
	}

	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(claims.UserInfo())
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue access token", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresAt.Unix(),
	}, nil
}
