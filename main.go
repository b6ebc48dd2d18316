package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DonSam77/reservasjs/internal/config"
	"github.com/DonSam77/reservasjs/internal/db"
	"github.com/DonSam77/reservasjs/internal/handlers"
	"github.com/DonSam77/reservasjs/internal/handlers/auth"
	"github.com/DonSam77/reservasjs/internal/logging"
	"github.com/DonSam77/reservasjs/internal/store"
	"github.com/DonSam77/reservasjs/internal/store/firestore"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	logging.Init("reservasjs-api", cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("open store")
	}
	defer st.Close()

	opts := handlers.Options{JWTSecret: cfg.JWTSecret}
	if cfg.AuthEnabled {
		opts.Auth, err = auth.New(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, cfg.JWTTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("auth")
		}
	}

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.NewRouter(st, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("backend", cfg.StoreBackend).Bool("auth", cfg.AuthEnabled).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		sctx, scancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer scancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown")
		}
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemory(), nil
	case "mysql":
		return db.Open(ctx, cfg.DSN(), cfg.DBAttempts)
	case "firestore":
		creds := cfg.FirestoreCredentials
		if _, err := os.Stat(creds); err != nil {
			// Fall back to application default credentials / emulator.
			creds = ""
		}
		return firestore.Open(ctx, firestore.Options{
			ProjectID:       cfg.FirestoreProjectID,
			DatabaseID:      cfg.FirestoreDatabase,
			CredentialsFile: creds,
		})
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
