// This is the main entry point of the realtor application.
// It's responsible for initializing configuration, logging, the database pool,
// services and handlers (controllers), setting up the HTTP router and middleware,
// and starting the HTTP server. It also handles graceful shutdown.
//
// Analogy to Nest.js: This file is similar to `main.ts` in a Nest.js application,
// where the application is bootstrapped; the `migrate` command plays the role of
// `prisma migrate deploy`.
// @title Realtor API
// @version 1.0
// @description Home listings for buyers and realtors.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/realtor-go/apperror"
	"github.com/user/realtor-go/auth"
	"github.com/user/realtor-go/config"
	"github.com/user/realtor-go/db"
	_ "github.com/user/realtor-go/docs" // Registers the OpenAPI document
	"github.com/user/realtor-go/homes"
	"github.com/user/realtor-go/logger"
	"github.com/user/realtor-go/users"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load .env file. In production, variables are usually set directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	app := &cli.App{
		Name:  "realtor",
		Usage: "home listing API",
		// With no subcommand the server starts, like `npm run start`.
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Action: migrateUp,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// bootstrap loads the configuration and builds the process-wide logger.
func bootstrap() (*config.AppConfig, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	zl, err := logger.New(cfg.Server.IsProduction())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	// auth.WriteError logs through the global logger.
	zap.ReplaceGlobals(zl)
	return cfg, zl, nil
}

func migrateUp(_ *cli.Context) error {
	cfg, zl, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	return db.RunMigrations(cfg.DB, cfg.Server.MigrationsPath, zl)
}

func serve(c *cli.Context) error {
	cfg, zl, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      newRouter(cfg, pool, zl),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Either a signal arrived or the server died; in both cases drain and stop.
		<-gctx.Done()
		zl.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	zl.Info("server stopped gracefully")
	return nil
}

// newRouter wires services into handlers and mounts them, the manual equivalent
// of Nest's module imports.
func newRouter(cfg *config.AppConfig, pool *pgxpool.Pool, zl *zap.Logger) http.Handler {
	tokens := auth.NewTokenIssuer(*cfg.Auth)

	authService := auth.NewService(auth.NewUserStore(pool), auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, zl)
	authHandlers := auth.NewHandlers(authService, tokens)
	homeHandler := homes.NewHandler(homes.NewService(pool), zl)
	userHandlers := users.NewUserHandlers(users.NewUserService(pool))

	r := chi.NewRouter()

	// IMPORTANT: Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger(zl))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		auth.WriteError(w, r, apperror.NewNotFoundError(fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path), nil))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/auth", authHandlers.RegisterRoutes)
	r.Route("/home", func(r chi.Router) {
		homeHandler.RegisterRoutes(r, tokens)
	})
	r.Route("/users", func(r chi.Router) {
		userHandlers.RegisterRoutes(r, tokens)
	})

	return r
}
