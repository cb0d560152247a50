package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/referly/referral-be/internal/config"
	"github.com/referly/referral-be/internal/logger"
	"github.com/referly/referral-be/internal/mail"
	"github.com/referly/referral-be/internal/server"
	"github.com/referly/referral-be/internal/storage/postgres"
)

func main() {
	loadLocalEnv()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("init database")
	}
	defer store.Close()

	mailer := mail.New(cfg.SMTP)

	srv := server.New(cfg, store, store, mailer)

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddress()).Msg("referral backend listening")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown error")
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		zlog.Info().Msg("no .env file found; relying on existing environment")
	}
}
