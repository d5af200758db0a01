package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmbook/farmbook/internal/api"
	"github.com/farmbook/farmbook/internal/auth"
	"github.com/farmbook/farmbook/internal/config"
	"github.com/farmbook/farmbook/internal/db"
	"github.com/farmbook/farmbook/internal/ledger"
	"github.com/farmbook/farmbook/internal/logger"
	"github.com/farmbook/farmbook/internal/model"
	"github.com/farmbook/farmbook/internal/ratelimit"
	"github.com/farmbook/farmbook/internal/store"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv, os.Stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	_, statErr := os.Stat(cfg.DBPath)
	fresh := os.IsNotExist(statErr)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	log.Info("database ready", "path", cfg.DBPath, "created", fresh)

	ctx := context.Background()
	if username := model.NormalizeUsername(cfg.User); fresh && username != "" {
		password, err := createInitialUser(ctx, database, username)
		if err != nil {
			return err
		}
		printInitialUser(username, password)
	}

	if n, err := store.PurgeExpiredTokens(ctx, database, time.Now()); err != nil {
		return err
	} else if n > 0 {
		log.Info("purged expired token revocations", "count", n)
	}

	// The signing secret is generated on first start and kept in the database.
	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		return fmt.Errorf("getting JWT secret: %w", err)
	}

	handler := api.NewRouter(api.Deps{
		DB:           database,
		Ledger:       ledger.New(database, log),
		Tokens:       auth.NewIssuer(jwtSecret, cfg.TokenTTL),
		LoginLimiter: ratelimit.New(cfg.LoginRPS, cfg.LoginBurst),
		Logger:       log,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		log.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("server forced to shutdown", "error", err)
		}
	}()

	log.Info("server started", "addr", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	log.Info("server stopped, closing database")
	return nil
}

// createInitialUser creates the first account with a generated password.
func createInitialUser(ctx context.Context, database *sql.DB, username string) (string, error) {
	password, err := auth.GeneratePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	if _, err := store.CreateUser(ctx, database, username, hash); err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}
	return password, nil
}

func printInitialUser(username, password string) {
	fmt.Println("Account created:")
	fmt.Printf("  Username: %s\n", username)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println("Change it after logging in with PUT /api/auth/password.")
	fmt.Println()
}
