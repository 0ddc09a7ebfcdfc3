package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-records/auth"
	"github.com/diewo77/go-records/internal/config"
	"github.com/diewo77/go-records/internal/db"
	"github.com/diewo77/go-records/internal/logging"
	"github.com/diewo77/go-records/internal/store"
	"github.com/diewo77/go-records/view"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.App.LogLevel, cfg.App.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	dbConn, err := db.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if *migrateOnlyFlag {
		if err := migrate(cfg, dbConn); err != nil {
			return err
		}
		log.Info("migrations completed")
		return nil
	}
	if *seedOnlyFlag {
		if err := db.Seed(ctx, dbConn, adminFrom(cfg), log); err != nil {
			return err
		}
		log.Info("seeding completed")
		return nil
	}

	if err := migrate(cfg, dbConn); err != nil {
		return err
	}
	if cfg.App.Seed {
		if err := db.Seed(ctx, dbConn, adminFrom(cfg), log); err != nil {
			return err
		}
	}

	sessionStore, err := openSessionStore(ctx, cfg, dbConn, log)
	if err != nil {
		return err
	}

	view.SetDevMode(cfg.App.Dev)
	app := NewApp(dbConn, sessionStore, cfg.Session.Secret, log)
	app.Sessions().TTL = cfg.Session.TTL()
	app.Sessions().Secure = cfg.Session.CookieSecure

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Server.Port, "dev", cfg.App.Dev, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}

// migrate applies the SQL migrations when MIGRATIONS is set on postgres,
// and gorm's AutoMigrate otherwise.
func migrate(cfg *config.Config, conn *gorm.DB) error {
	if cfg.App.Migrations && cfg.Database.Driver == "postgres" {
		if err := db.RunSQLMigrations("migrations", cfg.Database.MigrateURL()); err != nil {
			return err
		}
		return db.Check(conn)
	}
	return db.Migrate(conn)
}

// openSessionStore returns the redis or database session store. Expired
// database sessions are purged first.
func openSessionStore(ctx context.Context, cfg *config.Config, conn *gorm.DB, log *slog.Logger) (auth.Store, error) {
	if cfg.Session.Store == "redis" {
		rdb, err := auth.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return auth.NewRedisStore(rdb, cfg.Session.TTL()), nil
	}
	sessions := store.NewSessionStore(conn).WithTTL(cfg.Session.TTL())
	n, err := sessions.PurgeExpired(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		log.Info("purged expired sessions", "count", n)
	}
	return sessions, nil
}

func adminFrom(cfg *config.Config) db.Admin {
	return db.Admin{Username: cfg.App.AdminUsername, Password: cfg.App.AdminPassword}
}
