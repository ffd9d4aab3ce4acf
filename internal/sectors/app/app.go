package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/sectors/internal/sectors/http"
	"github.com/aussiebroadwan/sectors/internal/sectors/service"
	"github.com/aussiebroadwan/sectors/internal/sectors/store"
	"github.com/aussiebroadwan/sectors/internal/sectors/store/drivers/postgres"
	"github.com/aussiebroadwan/sectors/internal/sectors/store/drivers/sqlite"
	"github.com/aussiebroadwan/sectors/pkg/jwtx"
	"github.com/aussiebroadwan/sectors/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application is the sector API with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db            store.Store
	verifier      jwtx.Verifier
	sectorService *service.SectorService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with the database migrated and routes wired.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "sectors-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initAuth(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.sectorService = &service.SectorService{Store: app.db}
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for in-process tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("sectors api starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"auth", app.verifier != nil,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down sectors api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("sectors api stopped")
	return nil
}

func (app *Application) initDatabase() error {
	var (
		db     store.Store
		driver string
		err    error
	)

	if app.cfg.UsesPostgres() {
		driver = "postgres"
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
		cancel()
	} else {
		driver = "sqlite"
		dsn := app.cfg.DatabaseURL
		if dsn != ":memory:" {
			dsn = sqlite.FileDSN(dsn)
		}
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", driver, err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", driver)
	return nil
}

// initAuth builds the token verifier. Without a secret the API is open.
func (app *Application) initAuth() error {
	if app.cfg.JWTSecret == "" {
		app.logger.Warn("SECTORS_JWT_SECRET not set, bearer authentication disabled")
		return nil
	}

	hs, err := jwtx.NewHS256([]byte(app.cfg.JWTSecret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("invalid SECTORS_JWT_SECRET: %w", err)
	}
	app.verifier = hs
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.cfg.CORSOrigins,
		app.db,
		app.logger,
	)
	router.SectorService = app.sectorService
	router.TrustProxyHeaders = app.cfg.TrustProxy
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
