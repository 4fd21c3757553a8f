package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gumwoo/umc-pr/internal/config"
	"github.com/gumwoo/umc-pr/internal/repository/postgres"
	"github.com/gumwoo/umc-pr/internal/service"
	myhttp "github.com/gumwoo/umc-pr/internal/transport/http"
	"github.com/gumwoo/umc-pr/pkg/logger/sl"
	"github.com/gumwoo/umc-pr/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()

	out, closeLog, err := logOutput(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()

	log := slogpretty.SetupLogger(cfg.Env, out)

	log.Info("starting umc-pr", slog.String("env", cfg.Env))

	db, err := postgres.NewDB(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("db close failed", sl.Err(err))
		}
	}()

	regions := postgres.NewRegionRepository(db.DB(), log)
	stores := postgres.NewStoreRepository(db.DB(), log)
	reviews := postgres.NewReviewRepository(db.DB(), log)
	missions := postgres.NewMissionRepository(db.DB(), log)
	challenges := postgres.NewChallengeRepository(db.DB(), log)
	users := postgres.NewUserRepository(db.DB(), log)

	srv := myhttp.NewServer(log, db,
		myhttp.Services{
			Stores:   service.NewStoreService(db.DB(), log, regions, stores),
			Reviews:  service.NewReviewService(db.DB(), log, stores, reviews),
			Missions: service.NewMissionService(db.DB(), log, stores, missions, challenges),
			Users:    service.NewUserService(log, users),
		},
		myhttp.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			UserIDHeader:   cfg.Auth.UserIDHeader,
			FallbackUserID: cfg.Auth.FallbackUserID,
			DefaultLimit:   cfg.Pagination.DefaultLimit,
		},
	)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)

	go startServer(log, httpServer, errChan)

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %w", err)
	}

	log.Info("server stopped")

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %w", err)
	}
}

// logOutput opens the log file when one is configured. The returned func syncs
// and closes it.
func logOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return io.MultiWriter(os.Stdout, f), func() {
		_ = f.Sync()
		_ = f.Close()
	}, nil
}
