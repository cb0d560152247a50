package server

import (
	"context"
	"net/http"
	"time"

	"github.com/referly/referral-be/internal/auth"
	"github.com/referly/referral-be/internal/config"
	"github.com/referly/referral-be/internal/http/handlers"
	"github.com/referly/referral-be/internal/mail"
	"github.com/referly/referral-be/internal/middleware"
	"github.com/referly/referral-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, users storage.UserStore, referrals storage.ReferralStore, mailer mail.Sender) *Server {
	mux := http.NewServeMux()

	health := handlers.NewHealthHandler(time.Now())
	health.Register(mux)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handlers.NewAuthHandler(users, tokens)
	authHandler.Register(mux)

	referralHandler := handlers.NewReferralHandler(referrals, mailer)
	referralHandler.Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
