package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/realtor-go/config"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	tokenIssuer      = "realtor"
)

// CustomClaims embeds jwt.RegisteredClaims and adds the caller identity.
// Carrying name and user type in the token lets the middleware build a UserInfo
// without a database round trip.
type CustomClaims struct {
	UserID    int      `json:"user_id"`
	Name      string   `json:"name"`
	UserType  UserType `json:"user_type"`
	TokenType string   `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// UserInfo returns the caller identity carried by the claims.
func (c *CustomClaims) UserInfo() UserInfo {
	return UserInfo{ID: c.UserID, Name: c.Name, UserType: c.UserType}
}

// TokenIssuer signs and verifies HS256 access and refresh tokens.
type TokenIssuer struct {
	secret          []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
	now             func() time.Time
}

// NewTokenIssuer creates a TokenIssuer from the auth configuration.
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:          []byte(cfg.JWTSecret),
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		now:             time.Now,
	}
}

// GenerateTokens creates both an access and a refresh token for the user.
func (t *TokenIssuer) GenerateTokens(info UserInfo) (*TokenResponse, error) {
	accessToken, accessExpiresAt, err := t.sign(info, tokenTypeAccess, t.accessDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, _, err := t.sign(info, tokenTypeRefresh, t.refreshDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    accessExpiresAt.Unix(),
	}, nil
}

// GenerateAccessToken creates only an access token, used when refreshing.
func (t *TokenIssuer) GenerateAccessToken(info UserInfo) (string, time.Time, error) {
	return t.sign(info, tokenTypeAccess, t.accessDuration)
}

func (t *TokenIssuer) sign(info UserInfo, tokenType string, duration time.Duration) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(duration)
	claims := &CustomClaims{
		UserID:    info.ID,
		Name:      info.Name,
		UserType:  info.UserType,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprintf("%d", info.ID),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses a token, checks its signature, expiry and type.
func (t *TokenIssuer) ValidateToken(tokenString, expectedTokenType string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != expectedTokenType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedTokenType, claims.TokenType)
	}
	if claims.UserID == 0 || !claims.UserType.Valid() {
		return nil, errors.New("token is missing user claims")
	}
	return claims, nil
}
