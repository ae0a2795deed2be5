package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"phishguard/internal/platform/config"
	"phishguard/internal/platform/logger"
)

// Server owns a chi mux and the stdlib server in front of it
type Server struct {
	addr  string
	grace time.Duration
	mux   *chi.Mux
	srv   *stdhttp.Server
}

// NewServer reads ADDR, READ_TIMEOUT, WRITE_TIMEOUT, SHUTDOWN_GRACE from cfg (usually CORE_API_)
// Scoring a long email is cheap; the write timeout mostly bounds slow clients
func NewServer(cfg config.Conf) *Server {
	addr := cfg.MayString("ADDR", ":4000")
	m := chi.NewRouter()
	return &Server{
		addr:  addr,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		mux:   m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 60*time.Second),
		},
	}
}

// Router returns the mux behind the platform Router seam
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx is cancelled, then drains for at most the grace period
// A clean shutdown returns nil
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")

	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.Background(), s.grace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("http shutdown")
		}
	})
	defer stop()

	err := s.srv.ListenAndServe()
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
