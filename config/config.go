// Package config loads the realtor service configuration from environment variables.
// Every problem found while loading is collected, so a misconfigured deployment
// reports all missing or malformed variables at once instead of one per restart.
// In Nest.js this is the job of `@nestjs/config` and its ConfigService.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/crypto/bcrypt"
)

// Pool size bounds for the application database pool.
const (
	minPoolSize = 5
	maxPoolSize = 100
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret            string        // Secret key for signing JWTs
	AccessTokenDuration  time.Duration // Lifetime of access tokens
	RefreshTokenDuration time.Duration // Lifetime of refresh tokens
	BcryptCost           int           // Work factor for password hashes
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	Env            string // "development" or "production"
	MigrationsPath string
}

// IsProduction reports whether the service runs with production settings.
func (s ServerConfig) IsProduction() bool {
	return s.Env == "production"
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB     *PoolConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

// envLoader reads variables through lookup and accumulates every error it sees.
type envLoader struct {
	lookup func(string) (string, bool)
	errs   *multierror.Error
}

func (l *envLoader) fail(format string, args ...interface{}) {
	l.errs = multierror.Append(l.errs, fmt.Errorf(format, args...))
}

func (l *envLoader) required(key string) string {
	value, ok := l.lookup(key)
	if !ok || value == "" {
		l.fail("missing required environment variable: %s", key)
		return ""
	}
	return value
}

func (l *envLoader) optional(key, defaultValue string) string {
	if value, ok := l.lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func (l *envLoader) optionalInt(key string, defaultValue int) int {
	valueStr, ok := l.lookup(key)
	if !ok || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		l.fail("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err)
		return defaultValue
	}
	return value
}

// `time.ParseDuration` expects a string like "15m" or "1h30m".
func (l *envLoader) optionalDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, ok := l.lookup(key)
	if !ok || valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		l.fail("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err)
		return defaultValue
	}
	return value
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (*AppConfig, error) {
	return Load(os.LookupEnv)
}

// Load builds an AppConfig from the given lookup function. Tests pass a map-backed
// lookup; LoadConfig passes os.LookupEnv.
func Load(lookup func(string) (string, bool)) (*AppConfig, error) {
	l := &envLoader{lookup: lookup}

	poolSize := l.optionalInt("DB_POOL_SIZE", 10)
	if poolSize < minPoolSize || poolSize > maxPoolSize {
		l.fail("DB_POOL_SIZE must be between %d and %d, got %d", minPoolSize, maxPoolSize, poolSize)
	}

	db := &PoolConfig{
		Host:     l.optional("DB_HOST", "localhost"),
		Port:     l.optionalInt("DB_PORT", 5432),
		User:     l.required("DB_USER"),
		Password: l.required("DB_PASSWORD"),
		DBName:   l.required("DB_NAME"),
		MaxSize:  poolSize,
	}

	bcryptCost := l.optionalInt("BCRYPT_COST", 10)
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		l.fail("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, bcryptCost)
	}

	authConfig := &AuthConfig{
		JWTSecret:            l.required("JWT_SECRET"),
		AccessTokenDuration:  l.optionalDuration("JWT_ACCESS_TOKEN_DURATION", 15*time.Minute),
		RefreshTokenDuration: l.optionalDuration("JWT_REFRESH_TOKEN_DURATION", 168*time.Hour), // 7 days
		BcryptCost:           bcryptCost,
	}

	env := l.optional("APP_ENV", "development")
	if env != "development" && env != "production" {
		l.fail("APP_ENV must be 'development' or 'production', got '%s'", env)
	}

	server := &ServerConfig{
		Port:           l.optional("PORT", "8080"),
		Env:            env,
		MigrationsPath: l.optional("MIGRATIONS_PATH", "./migrations"),
	}

	if err := l.errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("configuration errors: %w", err)
	}

	return &AppConfig{
		DB:     db,
		Auth:   authConfig,
		Server: server,
	}, nil
}
